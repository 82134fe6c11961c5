package webapi

import (
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/led-dino/playacamp/pkg/clog"
	"github.com/pkg/errors"
)

// LogController lets admins look at and change log levels per component and
// where log output goes while the server runs.
type LogController struct {
	mu            sync.Mutex
	currentOutput string
}

func NewLogController() *LogController {
	return &LogController{currentOutput: "stdout"}
}

type loggingState struct {
	Levels     map[string]string `json:"levels"`
	Components []string          `json:"components"`
	Output     string            `json:"output"`
}

func (c *LogController) state() loggingState {
	return loggingState{
		Levels:     clog.Levels(),
		Components: clog.Components(),
		Output:     c.currentOutput,
	}
}

func (c *LogController) ShowCurrentLogging(ctx echo.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ctx.JSON(http.StatusOK, c.state())
}

// SetLogging changes the level of one component, or the default level when
// component is blank or "default". A non-blank log_output switches the
// output to stdout, stderr or the named file.
func (c *LogController) SetLogging(ctx echo.Context) error {
	var req struct {
		Component string `json:"component"`
		LogLevel  string `json:"log_level"`
		LogOutput string `json:"log_output"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if req.LogLevel != "" {
		if err := setLevel(req.Component, req.LogLevel); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	if req.LogOutput != "" {
		if err := c.setOutput(req.LogOutput); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	return ctx.JSON(http.StatusOK, c.state())
}

func setLevel(component, level string) error {
	var err error
	if component == "" || component == clog.DefaultComponent {
		err = clog.SetDefaultLevelFromString(level)
	} else {
		err = clog.SetLevelFromString(component, level)
	}

	return errors.Wrapf(err, "invalid log level %s", level)
}

func (c *LogController) setOutput(output string) error {
	var w io.Writer
	switch output {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "failed to open log output %s", output)
		}
		w = f
	}

	clog.SetOutput(w)
	c.currentOutput = output
	return nil
}
