package errors

import (
	"strings"
)

// GoogleAuthenticationError creates a credentials error with guidance
func GoogleAuthenticationError(originalErr error) *Error {
	err := New(ErrorTypeAuthentication, ServiceTagManager, "Google authentication failed")
	err.Err = originalErr

	if originalErr != nil {
		errStr := originalErr.Error()
		switch {
		case strings.Contains(errStr, "could not find default credentials"):
			err.WithCause("Application default credentials not found")
		case strings.Contains(errStr, "quota"):
			err.WithCause("API quota exceeded")
			err.WithSolutions(
				"Wait for the quota window to reset",
				"Raise the Tag Manager API quota in the Cloud Console",
			)
			return err
		default:
			err.WithCause(errStr)
		}
	}

	if err.Environment == "CI/CD detected" {
		err.WithSolutions(
			`export GOOGLE_APPLICATION_CREDENTIALS="service-account.json"`,
			`tagsync --config ci.yaml (with google.credentials_file set)`,
		)
	} else {
		err.WithSolutions(
			`gcloud auth application-default login --scopes=https://www.googleapis.com/auth/tagmanager.edit.containers,https://www.googleapis.com/auth/spreadsheets,https://www.googleapis.com/auth/cloud-platform`,
			`export GOOGLE_APPLICATION_CREDENTIALS="/path/to/key.json"`,
		)
	}

	err.WithVerify("gcloud auth application-default print-access-token")
	err.WithHelp("tagsync --help")

	return err
}

// SpreadsheetNotConfiguredError reports a sheets backend without a spreadsheet id
func SpreadsheetNotConfiguredError() *Error {
	return New(ErrorTypeConfiguration, ServiceSheets, "Spreadsheet not configured").
		WithCause("spreadsheet.id is empty while spreadsheet.backend is sheets").
		WithSolutions(
			`export TAGSYNC_SPREADSHEET_ID="<spreadsheet id>"`,
			`tagsync --spreadsheet <spreadsheet id> ...`,
			`tagsync --backend local ... (work on a local workbook instead)`,
		)
}

// WorkspaceNotSelectedError reports that no workspace could be determined
func WorkspaceNotSelectedError() *Error {
	return New(ErrorTypeConfiguration, ServiceTagManager, "No Tag Manager workspace selected").
		WithSolutions(
			`tagsync --workspace accounts/<id>/containers/<id>/workspaces/<id> ...`,
			`tagsync workspace workspaces, then tick one row in the "GTM Workspace" sheet`,
		)
}

// StorageError reports a failed spreadsheet read or write
func StorageError(service Service, message string, originalErr error) *Error {
	return Wrap(ErrorTypeStorage, service, message, originalErr)
}
