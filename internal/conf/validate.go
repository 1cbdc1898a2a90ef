// conf/validate.go

package conf

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateWebServerSettings(settings); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateOutputSettings(settings); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateImportSettings(settings); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateWebServerSettings(settings *Settings) error {
	if !settings.WebServer.Enabled {
		return nil
	}
	port, err := strconv.Atoi(settings.WebServer.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid web server port: %s", settings.WebServer.Port)
	}
	return nil
}

func validateOutputSettings(settings *Settings) error {
	sqlite := settings.Output.SQLite
	mysql := settings.Output.MySQL

	if !sqlite.Enabled && !mysql.Enabled {
		return errors.New("no database backend enabled, enable output.sqlite or output.mysql")
	}
	if sqlite.Enabled && sqlite.Path == "" {
		return errors.New("output.sqlite.path must not be empty when SQLite is enabled")
	}
	if mysql.Enabled {
		if mysql.Host == "" || mysql.Database == "" {
			return errors.New("output.mysql.host and output.mysql.database must be set when MySQL is enabled")
		}
	}
	return nil
}

func validateImportSettings(settings *Settings) error {
	if settings.Import.MaxReportedErrors < 0 {
		return fmt.Errorf("import.maxreportederrors must not be negative: %d", settings.Import.MaxReportedErrors)
	}
	return nil
}
