package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to user-facing messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"         // login required
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"        // access token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"        // malformed or bad-signature token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"        // refresh token blacklisted on logout
	AuthAccountNotFound    = "AUTH_ACCOUNT_NOT_FOUND"    // no user with this email
	AuthPasswordMismatch   = "AUTH_PASSWORD_MISMATCH"    // wrong password
	AuthNotApproved        = "AUTH_NOT_APPROVED"         // signed up, awaiting admin approval
	AuthAccountBlocked     = "AUTH_ACCOUNT_BLOCKED"      // deactivated by admin after first login
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"         // duplicate email on signup
	AuthPasswordNotConfirm = "AUTH_PASSWORD_NOT_CONFIRM" // password fields did not match

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access permission
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin accounts only
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // resource belongs to another user
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from token context

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric path id
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // value out of allowed range
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field

	// ==================== Product (PRODUCT_) ====================
	ProductNotFound       = "PRODUCT_NOT_FOUND"       // product missing
	ProductAlreadyDeleted = "PRODUCT_ALREADY_DELETED" // soft delete called twice
	ProductNotDeleted     = "PRODUCT_NOT_DELETED"     // restore on a live product

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // line item missing
	CartEmpty        = "CART_EMPTY"          // no cart or no lines at checkout
	CartQuantityMax  = "CART_QUANTITY_MAX"   // quantity above per-line cap

	// ==================== Address (ADDRESS_) ====================
	AddressNotFound = "ADDRESS_NOT_FOUND" // address missing or not the caller's
	AddressRequired = "ADDRESS_REQUIRED"  // order placed without an address id

	// ==================== Order (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"      // order missing
	OrderItemNotFound  = "ORDER_ITEM_NOT_FOUND" // order line missing
	OrderInvalidStatus = "ORDER_INVALID_STATUS" // status outside the allowed set
	OrderPlaceFailed   = "ORDER_PLACE_FAILED"   // transaction rolled back

	// ==================== Rating (RATING_) ====================
	RatingNotDelivered  = "RATING_NOT_DELIVERED"  // order not delivered yet
	RatingAlreadyExists = "RATING_ALREADY_EXISTS" // one rating per user per product
	RatingInvalidScore  = "RATING_INVALID_SCORE"  // score outside 1..5

	// ==================== Customer management (CUSTOMER_) ====================
	CustomerNotFound       = "CUSTOMER_NOT_FOUND"       // user missing
	CustomerAlreadyActive  = "CUSTOMER_ALREADY_ACTIVE"  // approve/unblock on active account
	CustomerAlreadyInUse   = "CUSTOMER_ALREADY_IN_USE"  // approve on an account that has logged in
	CustomerAlreadyBlocked = "CUSTOMER_ALREADY_BLOCKED" // block on an already blocked account

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // non-image upload
	UploadFailed          = "UPLOAD_FAILED"            // presign failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // unexpected failure
)
