package profile

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/nyaruka/phonenumbers"
	"github.com/pkg/errors"
)

// FormValue is a form field that may arrive as a JSON string or number.
// Validation decides what it must contain.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = FormValue(s)
		return nil
	}

	*v = FormValue(strings.TrimSpace(string(b)))
	return nil
}

// BasicsForm is the "about me" section of a profile. Blank zipcode and phone
// leave the stored values alone; blank years on playa clears it.
//
// SocialLinks maps account type ("fb", "twitter") to a link. When present,
// every account type is updated and a type missing from the map counts as
// blank. When absent the links are left alone.
type BasicsForm struct {
	PlayaName    string            `json:"playa_name"`
	Zipcode      string            `json:"zipcode"`
	Phone        string            `json:"phone"`
	YearsOnPlaya FormValue         `json:"years_on_playa"`
	Biography    string            `json:"biography"`
	SocialLinks  map[string]string `json:"social_links"`
}

type cleanedBasics struct {
	playaName    string
	zipcode      *string
	phone        *string
	yearsOnPlaya *int
	biography    string
	socialLinks  map[string]string
}

func (f BasicsForm) clean() (*cleanedBasics, error) {
	verr := apperr.NewValidationError()
	cleaned := &cleanedBasics{
		playaName: strings.TrimSpace(f.PlayaName),
		biography: f.Biography,
	}

	if len(cleaned.playaName) > 64 {
		verr.Add("playa_name", "Ensure this value has at most 64 characters.")
	}

	if zipcode := strings.TrimSpace(f.Zipcode); zipcode != "" {
		if !isZipcode(zipcode) {
			verr.Add("zipcode", "Invalid zipcode")
		}
		cleaned.zipcode = &zipcode
	}

	if phone := strings.TrimSpace(f.Phone); phone != "" {
		formatted, err := FormatPhoneNumber(phone)
		if err != nil {
			verr.Add("phone", "Error parsing phone number")
		}
		cleaned.phone = &formatted
	}

	if years := strings.TrimSpace(string(f.YearsOnPlaya)); years != "" {
		n, err := strconv.Atoi(years)
		if err != nil || n < 0 {
			verr.Add("years_on_playa", "Invalid value for years on playa")
		}
		cleaned.yearsOnPlaya = &n
	}

	if f.SocialLinks != nil {
		cleaned.socialLinks = cleanSocialLinks(f.SocialLinks, verr)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return cleaned, nil
}

func cleanSocialLinks(links map[string]string, verr *apperr.ValidationError) map[string]string {
	for accountType := range links {
		if !pcmodel.SocialMediaAccountChoices.Contains(accountType) {
			verr.Add("social_links", fmt.Sprintf("Unknown account type %s", accountType))
		}
	}

	cleaned := make(map[string]string, len(pcmodel.SocialMediaAccountChoices))
	for _, choice := range pcmodel.SocialMediaAccountChoices {
		link := strings.TrimSpace(links[choice.Value])
		if link != "" && !isURL(link) {
			verr.Add("social_links", "Enter a valid URL.")
		}
		cleaned[choice.Value] = link
	}

	return cleaned
}

func isURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isZipcode(s string) bool {
	if len(s) != 5 {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// FormatPhoneNumber parses a US phone number and renders it as xxx-xxx-xxxx.
func FormatPhoneNumber(phone string) (string, error) {
	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return "", err
	}

	nsn := phonenumbers.GetNationalSignificantNumber(parsed)
	if len(nsn) != 10 {
		return "", errors.Errorf("'%s' is not a 10 digit number", phone)
	}

	return fmt.Sprintf("%s-%s-%s", nsn[:3], nsn[3:6], nsn[6:]), nil
}
