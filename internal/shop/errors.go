package shop

// errors.go defines every rule violation the shop can report and the
// user-facing message shown for it. Codes are quoted by operators when
// reporting problems:
//
//	AUTH001-AUTH099  admin authentication and password changes
//	ORD001-ORD099    order submission
//	CAT001-CAT099    catalog management
//	CFG001-CFG099    storefront configuration
//	IMG001-IMG099    image uploads
//	ERR000           anything else (check the server log)

import "errors"

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrEmptyPassword        = errors.New("empty password")
	ErrPasswordMismatch     = errors.New("password confirmation mismatch")

	ErrMissingContactInfo    = errors.New("missing contact info")
	ErrEmptyCart             = errors.New("empty cart")
	ErrMissingStoreInfo      = errors.New("missing store info")
	ErrMissingAddress        = errors.New("missing address")
	ErrInvalidShippingMethod = errors.New("invalid shipping method")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidQuantity       = errors.New("invalid quantity")

	ErrMissingProductName = errors.New("missing product name")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrProductNotFound    = errors.New("product not found")
	ErrStaleCatalog       = errors.New("stale catalog")
	ErrInvalidProduct     = errors.New("invalid product")

	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidStorefront = errors.New("invalid storefront")

	ErrUnsupportedImage = errors.New("unsupported image")
	ErrImageTooLarge    = errors.New("image too large")
	ErrMediaNotFound    = errors.New("media not found")
)

// UserMessage is what the acting user sees for an error.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorMessage struct {
	err error
	msg UserMessage
}

// errorMessages is matched in order with errors.Is; the first match wins.
var errorMessages = []errorMessage{
	{ErrAuthenticationFailed, UserMessage{
		Message: "Incorrect admin password",
		Action:  "Check the password and try again",
		Code:    "AUTH001",
	}},
	{ErrEmptyPassword, UserMessage{
		Message: "The new password cannot be empty",
		Action:  "Enter a new password",
		Code:    "AUTH002",
	}},
	{ErrPasswordMismatch, UserMessage{
		Message: "The password confirmation does not match",
		Action:  "Type the same new password twice",
		Code:    "AUTH003",
	}},

	{ErrMissingContactInfo, UserMessage{
		Message: "Please fill in your name and phone number",
		Action:  "Both fields are required to place an order",
		Code:    "ORD001",
	}},
	{ErrEmptyCart, UserMessage{
		Message: "Your order is empty",
		Action:  "Set a quantity for at least one product",
		Code:    "ORD002",
	}},
	{ErrMissingStoreInfo, UserMessage{
		Message: "Please enter the pickup store",
		Action:  "Store pickup delivery needs the store name",
		Code:    "ORD003",
	}},
	{ErrMissingAddress, UserMessage{
		Message: "Please enter the delivery address",
		Action:  "Home delivery needs a full address",
		Code:    "ORD004",
	}},
	{ErrInvalidShippingMethod, UserMessage{
		Message: "Unknown shipping method",
		Action:  "Choose one of the listed shipping methods",
		Code:    "ORD005",
	}},
	{ErrInvalidPaymentMethod, UserMessage{
		Message: "Unknown payment method",
		Action:  "Choose one of the listed payment methods",
		Code:    "ORD006",
	}},
	{ErrInvalidQuantity, UserMessage{
		Message: "Quantities must be whole numbers from 0 to 9999",
		Action:  "Correct the highlighted quantity",
		Code:    "ORD007",
	}},

	{ErrMissingProductName, UserMessage{
		Message: "Product name is required",
		Action:  "Enter a name for the product",
		Code:    "CAT001",
	}},
	{ErrInvalidPrice, UserMessage{
		Message: "Price must be a whole number from 0 to 1000000",
		Action:  "Enter the price without decimals or currency symbols",
		Code:    "CAT002",
	}},
	{ErrProductNotFound, UserMessage{
		Message: "That product no longer exists",
		Action:  "Reload the page to see the current catalog",
		Code:    "CAT003",
	}},
	{ErrStaleCatalog, UserMessage{
		Message: "The catalog changed since the page was loaded",
		Action:  "Reload the page and try again",
		Code:    "CAT004",
	}},
	{ErrInvalidProduct, UserMessage{
		Message: "The product details are invalid",
		Action:  "Shorten the name or description",
		Code:    "CAT005",
	}},

	{ErrInvalidColor, UserMessage{
		Message: "Colors must be hex values like #336699",
		Action:  "Pick the color again",
		Code:    "CFG001",
	}},
	{ErrInvalidStorefront, UserMessage{
		Message: "The storefront settings are invalid",
		Action:  "Shorten the title or description",
		Code:    "CFG002",
	}},

	{ErrUnsupportedImage, UserMessage{
		Message: "Unsupported image format",
		Action:  "Upload a PNG, JPEG, GIF or WebP image",
		Code:    "IMG001",
	}},
	{ErrImageTooLarge, UserMessage{
		Message: "The image is too large",
		Action:  "Upload a smaller image",
		Code:    "IMG002",
	}},
	{ErrMediaNotFound, UserMessage{
		Message: "Image not found",
		Action:  "The image may have been replaced",
		Code:    "IMG003",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts err into the message shown to the user.
// Unknown errors map to the ERR000 fallback; nil maps to the zero value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, em := range errorMessages {
		if errors.Is(err, em.err) {
			return em.msg
		}
	}
	return defaultMessage
}

// IsUserFacing reports whether err is a known rule violation rather than
// an internal failure.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
