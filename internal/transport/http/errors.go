package http

import (
	"errors"

	"chngfilter/internal/dataprocessing"
	apierrors "chngfilter/internal/errors"
	"chngfilter/internal/services"
)

// mapServiceError converts service and loader sentinels into API errors.
// Anything else is returned unchanged for the ErrorHandler to classify.
func mapServiceError(err error) error {
	var notLoaded *services.TableNotLoadedError
	switch {
	case errors.As(err, &notLoaded):
		return apierrors.TableNotLoadedError(string(notLoaded.Slot))
	case errors.Is(err, services.ErrInvalidSlot):
		return apierrors.ErrValidation("slot", err.Error())
	case errors.Is(err, dataprocessing.ErrUnsupportedFormat):
		return apierrors.UnsupportedFormatError(err)
	case errors.Is(err, dataprocessing.ErrEmptyInput):
		return apierrors.EmptyTableError(err)
	}
	return err
}
