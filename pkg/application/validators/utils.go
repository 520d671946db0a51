package validators

import (
	"net/url"
	"regexp"
	"strings"

	appTypes "github.com/icgc-argo/dac-api-sub000/pkg/application/types"
)

const MAX_WORD_COUNT = 200

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

func isValidEmail(value string) bool {
	return emailRegex.MatchString(value)
}

func isValidURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func wordCount(value string) int {
	return len(strings.Fields(value))
}

func requireField(errors []appTypes.FieldError, field string, value string) []appTypes.FieldError {
	if strings.TrimSpace(value) == "" {
		errors = append(errors, appTypes.FieldError{Field: field, Message: "field is required"})
	}
	return errors
}

func requireEmail(errors []appTypes.FieldError, field string, value string) []appTypes.FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errors, appTypes.FieldError{Field: field, Message: "field is required"})
	}
	if !isValidEmail(value) {
		return append(errors, appTypes.FieldError{Field: field, Message: "invalid email address"})
	}
	return errors
}

func requireURL(errors []appTypes.FieldError, field string, value string) []appTypes.FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errors, appTypes.FieldError{Field: field, Message: "field is required"})
	}
	if !isValidURL(value) {
		return append(errors, appTypes.FieldError{Field: field, Message: "invalid url"})
	}
	return errors
}

func limitWordCount(errors []appTypes.FieldError, field string, value string) []appTypes.FieldError {
	if wordCount(value) > MAX_WORD_COUNT {
		errors = append(errors, appTypes.FieldError{Field: field, Message: "exceeds maximum word count"})
	}
	return errors
}

func validatePersonalInfo(errors []appTypes.FieldError, prefix string, info appTypes.PersonalInfo) []appTypes.FieldError {
	errors = requireField(errors, prefix+".firstName", info.FirstName)
	errors = requireField(errors, prefix+".lastName", info.LastName)
	errors = requireField(errors, prefix+".primaryAffiliation", info.PrimaryAffiliation)
	errors = requireField(errors, prefix+".positionTitle", info.PositionTitle)
	errors = requireEmail(errors, prefix+".institutionEmail", info.InstitutionEmail)
	errors = requireEmail(errors, prefix+".googleEmail", info.GoogleEmail)
	return errors
}

func validateAddress(errors []appTypes.FieldError, prefix string, address appTypes.Address) []appTypes.FieldError {
	errors = requireField(errors, prefix+".country", address.Country)
	errors = requireField(errors, prefix+".streetAddress", address.StreetAddress)
	errors = requireField(errors, prefix+".cityAndProvince", address.CityAndProvince)
	errors = requireField(errors, prefix+".postalCode", address.PostalCode)
	return errors
}

func metaFromErrors(errors []appTypes.FieldError) appTypes.SectionMeta {
	status := appTypes.SECTION_STATUS_COMPLETE
	if len(errors) > 0 {
		status = appTypes.SECTION_STATUS_INCOMPLETE
	}
	return appTypes.SectionMeta{
		Status: status,
		Errors: errors,
	}
}
