package service

// DomainError is a user-recoverable failure with a stable code. Codes are
// picked up by the transport router for log error classification; messages
// are safe to show to the end user.
type DomainError struct {
	code string
	msg  string
}

func (e *DomainError) Error() string { return e.msg }

// Code returns the stable machine-readable failure code.
func (e *DomainError) Code() string { return e.code }

var (
	// ErrNotFound covers stale ids in choice payloads: the product,
	// category, order, or cart line no longer exists.
	ErrNotFound = &DomainError{"NOT_FOUND", "this item is no longer available"}
	// ErrEmptyCart is returned when checkout finds nothing to order.
	ErrEmptyCart = &DomainError{"EMPTY_CART", "your cart is empty, nothing to order"}
	// ErrCategoryExists reports a duplicate category name.
	ErrCategoryExists = &DomainError{"CATEGORY_EXISTS", "a category with this name already exists"}
	// ErrCategoryInUse reports a category deletion blocked by products.
	ErrCategoryInUse = &DomainError{"CATEGORY_IN_USE", "the category still contains products and cannot be deleted"}
	// ErrInvalidPrice reports a malformed or negative price input.
	ErrInvalidPrice = &DomainError{"INVALID_PRICE", "the price must be a non-negative number"}
	// ErrInvalidStatus reports a status outside the fixed set.
	ErrInvalidStatus = &DomainError{"INVALID_STATUS", "unknown order status"}
	// ErrNoAccess is the fixed denial for non-administrators. It does not
	// distinguish between missing and forbidden.
	ErrNoAccess = &DomainError{"NO_ACCESS", "you do not have access to this function"}
)
