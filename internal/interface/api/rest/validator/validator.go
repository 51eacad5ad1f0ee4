package validator

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"image-gallery-api/internal/interface/api/rest/dto/auth"
	"image-gallery-api/internal/interface/api/rest/dto/gallery"
)

const (
	minTitleLen       = 3
	maxTitleLen       = 255
	maxDescriptionLen = 2000

	minDisplayNameLen = 2
	maxDisplayNameLen = 64
)

func ValidatePage(page string) (int, error) {
	p := 1
	if page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 1 {
			return p, errors.New("invalid page")
		}
		return p, nil
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateTokenRequest(r auth.TokenRequest) map[string]string {
	errs := make(map[string]string)

	oauthKey := strings.TrimSpace(r.OauthKey)
	displayName := strings.TrimSpace(r.DisplayName)

	// oauth_key is opaque, only presence is checked
	if oauthKey == "" {
		errs["oauth_key"] = "oauth_key is required"
	}

	if msg := displayNameError(displayName); msg != "" {
		errs["display_name"] = msg
	}

	if r.ClientSecret == "" {
		errs["client_secret"] = "client_secret is required"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateDisplayName(name string) map[string]string {
	if msg := displayNameError(strings.TrimSpace(name)); msg != "" {
		return map[string]string{"name": msg}
	}

	return nil
}

func displayNameError(name string) string {
	if name == "" {
		return "display_name is required"
	}
	if l := utf8.RuneCountInString(name); l < minDisplayNameLen || l > maxDisplayNameLen {
		return "display_name length must be 2-64 characters"
	}

	return ""
}

func ValidateGallery(r gallery.Request) map[string]string {
	errs := make(map[string]string)

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errs["title"] = "title is required"
	} else if msg := lengthError("title", title, minTitleLen, maxTitleLen); msg != "" {
		errs["title"] = msg
	}

	if r.Description != nil {
		if msg := lengthError("description", strings.TrimSpace(*r.Description), minTitleLen, maxDescriptionLen); msg != "" {
			errs["description"] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// ValidateImageInfo checks the optional metadata accompanying an
// upload or an info update. Absent fields pass; present fields must
// carry something meaningful.
func ValidateImageInfo(title, description *string) map[string]string {
	errs := make(map[string]string)

	if title != nil {
		if msg := lengthError("title", strings.TrimSpace(*title), minTitleLen, maxTitleLen); msg != "" {
			errs["title"] = msg
		}
	}
	if description != nil {
		if msg := lengthError("description", strings.TrimSpace(*description), minTitleLen, maxDescriptionLen); msg != "" {
			errs["description"] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func lengthError(field, value string, min, max int) string {
	if l := utf8.RuneCountInString(value); l < min || l > max {
		return field + " length must be " + strconv.Itoa(min) + "-" + strconv.Itoa(max) + " characters"
	}

	return ""
}
