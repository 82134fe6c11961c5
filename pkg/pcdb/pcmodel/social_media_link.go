package pcmodel

import (
	"fmt"
	"net/url"
)

var SocialMediaAccountChoices = Choices{
	{"fb", "Facebook"},
	{"twitter", "Twitter"},
}

// SocialMediaLink is one of a profile's social accounts. A profile has at
// most one link per account type; a blank link is kept once it exists.
type SocialMediaLink struct {
	ID            int    `json:"id"`
	UserProfileID int    `json:"-" gorm:"index;not null"`
	AccountType   string `json:"account_type" gorm:"size:16"`
	Link          string `json:"link"`
}

// FormattedLink is the link without its scheme, query or fragment, for
// display.
func (l SocialMediaLink) FormattedLink() string {
	u, err := url.Parse(l.Link)
	if err != nil {
		return l.Link
	}
	return u.Host + u.Path
}

func (l SocialMediaLink) String() string {
	return fmt.Sprintf("SocialMediaLink(%d, %s)", l.UserProfileID, l.AccountType)
}
