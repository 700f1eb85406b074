package domain

import (
	"fmt"

	appErrors "tcreview/internal/errors"
)

func invalidStatusError(status string) error {
	return appErrors.New(appErrors.CodeInvalidStatus, fmt.Sprintf("invalid status: %s", status), nil)
}

func invalidActionError(action string) error {
	return appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("invalid review action: %s", action), nil)
}
