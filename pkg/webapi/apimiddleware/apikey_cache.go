package apimiddleware

import (
	"sync"

	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
)

// APIKeyCache remembers which user each api key belongs to. Entries must be
// dropped when something the middleware relies on (admin flag, profile)
// changes for that user.
type APIKeyCache struct {
	apikeyCacheMu sync.RWMutex
	cache         map[string]*pcmodel.User
	userStor      stor.UserStor
}

func NewAPIKeyCache(userStor stor.UserStor) *APIKeyCache {
	return &APIKeyCache{
		cache:    make(map[string]*pcmodel.User),
		userStor: userStor,
	}
}

func (c *APIKeyCache) GetUserByAPIKey(apikey string) (*pcmodel.User, error) {
	c.apikeyCacheMu.RLock()

	if user, ok := c.cache[apikey]; ok {
		c.apikeyCacheMu.RUnlock()
		return user, nil
	}

	c.apikeyCacheMu.RUnlock()
	c.apikeyCacheMu.Lock()
	defer c.apikeyCacheMu.Unlock()

	// Another request may have loaded the key while we waited for the write lock.
	if user, ok := c.cache[apikey]; ok {
		return user, nil
	}

	user, err := c.userStor.GetUserByAPIToken(apikey)
	if err != nil {
		return nil, err
	}

	c.cache[apikey] = user
	return user, nil
}

// DeleteUserByID drops every cached key belonging to the user.
func (c *APIKeyCache) DeleteUserByID(userID int) {
	c.apikeyCacheMu.Lock()
	defer c.apikeyCacheMu.Unlock()

	for apikey, user := range c.cache {
		if user.ID == userID {
			delete(c.cache, apikey)
		}
	}
}
