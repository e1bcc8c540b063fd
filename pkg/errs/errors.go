package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

// BusinessError is a business-rule failure carrying a fixed message code.
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func newBusinessError(code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

var (
	ErrInternalServer = errors.New("Internal server error")
	ErrClient         = errors.New("Bad request")
	ErrNotLoggedIn    = errors.New("Unauthorized access")
	ErrInvalidToken   = errors.New("Invalid or expired JWT")

	ErrMemberNotFound                = newBusinessError("MEMBER_NOT_FOUND", "Member not found")
	ErrArticleNotFound               = newBusinessError("ARTICLE_NOT_FOUND", "Article not found")
	ErrOfferNotFound                 = newBusinessError("OFFER_NOT_FOUND", "Offer not found")
	ErrMemberAlreadyExists           = newBusinessError("MEMBER_ALREADY_EXIST", "Member already exists")
	ErrPermissionDenied              = newBusinessError("PERMISSION_DENIED", "Permission denied")
	ErrNotSupportingParamCombination = newBusinessError("NOT_SUPPORTING_PARAM_COMBINATION", "Unsupported parameter combination")
	ErrInvalidCategoryCode           = newBusinessError("INVALID_CATEGORY_CODE", "Invalid category code")
	ErrInvalidTradeStatusCode        = newBusinessError("INVALID_TRADE_STATUS_CODE", "Invalid trade status code")
	ErrInvalidOffer                  = newBusinessError("INVALID_OFFER", "Offer is not acceptable for this article")
	ErrInvalidCredentials            = newBusinessError("INVALID_CREDENTIALS", "Email or password is incorrect")
)

var errorMap = map[error]int{
	ErrInternalServer:                ErrStatusInternalServer,
	ErrClient:                        ErrStatusClient,
	ErrNotLoggedIn:                   ErrStatusNotLoggedIn,
	ErrInvalidToken:                  ErrStatusUnauthorized,
	ErrMemberNotFound:                ErrStatusNotFound,
	ErrArticleNotFound:               ErrStatusNotFound,
	ErrOfferNotFound:                 ErrStatusNotFound,
	ErrMemberAlreadyExists:           ErrStatusConflict,
	ErrPermissionDenied:              ErrStatusNoPermission,
	ErrNotSupportingParamCombination: ErrStatusClient,
	ErrInvalidCategoryCode:           ErrStatusClient,
	ErrInvalidTradeStatusCode:        ErrStatusClient,
	ErrInvalidOffer:                  ErrStatusClient,
	ErrInvalidCredentials:            ErrStatusUnauthorized,
}

func GetErrorStatusCode(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errStatusCode, ok := errorMap[e]; ok {
			return errStatusCode
		}
	}
	return errorMap[ErrInternalServer]
}

// GetErrorCode returns the message code of a business error, or an empty string.
func GetErrorCode(err error) string {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr.Code
	}
	return ""
}
