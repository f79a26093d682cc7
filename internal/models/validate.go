// Package models defines the data contracts shared across the storefront
// and validates untrusted input at every boundary: the catalog fetch, the
// persisted cart, and anything handed over by an API caller. Consumers of
// external data check the returned *ValidationError and treat failure as
// "data absent"; admission paths (adding to the cart) propagate it.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldIssue is one per-field validation failure, structured for logging
// and API error payloads.
type FieldIssue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError aggregates every issue found in one value. It is nil on
// success; a non-nil error always carries at least one issue.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", is.Field, is.Rule)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(priceRangeRules, PriceRange{})
	v.RegisterStructValidation(cartItemRules, CartItem{})
	return v
}

// priceRangeRules enforces min < max; equal or inverted bounds are invalid.
func priceRangeRules(sl validator.StructLevel) {
	pr := sl.Current().Interface().(PriceRange)
	if pr.Min >= pr.Max {
		sl.ReportError(pr.Min, "min", "Min", "ltfield", "max")
	}
}

// cartItemRules enforces that a persisted subtotal never drifts from the
// snapshot price times quantity.
func cartItemRules(sl validator.StructLevel) {
	it := sl.Current().Interface().(CartItem)
	if it.Subtotal != it.Product.Price*int64(it.Quantity) {
		sl.ReportError(it.Subtotal, "subtotal", "Subtotal", "subtotal_mismatch", "")
	}
}

// ValidateProduct checks one product against the catalog contract.
func ValidateProduct(p Product) *ValidationError {
	return check(validate.Struct(p), "")
}

// ValidateProducts applies all-or-nothing semantics to a fetched catalog:
// if any element (or a duplicated product id) fails, the whole slice is
// rejected and the caller falls back to an empty catalog.
func ValidateProducts(products []Product) *ValidationError {
	var issues []FieldIssue
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if verr := check(validate.Struct(p), fmt.Sprintf("[%d].", i)); verr != nil {
			issues = append(issues, verr.Issues...)
		}
		if p.ID != "" && seen[p.ID] {
			issues = append(issues, FieldIssue{
				Field:   fmt.Sprintf("[%d].id", i),
				Rule:    "unique",
				Message: fmt.Sprintf("duplicate product id %q", p.ID),
			})
		}
		seen[p.ID] = true
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateFilter checks a filter before it replaces the active one.
func ValidateFilter(f ProductFilter) *ValidationError {
	return check(validate.Struct(f), "")
}

// ValidateSort checks that a sort key is one of the known orderings.
func ValidateSort(s ProductSort) *ValidationError {
	err := validate.Var(string(s), "oneof=name-asc name-desc price-asc price-desc rating-desc")
	if err == nil {
		return nil
	}
	return &ValidationError{Issues: []FieldIssue{{
		Field:   "sort",
		Rule:    "oneof",
		Message: fmt.Sprintf("unknown sort %q", s),
	}}}
}

// ValidateCartItem checks one cart entry, including its product snapshot
// and the subtotal equality invariant.
func ValidateCartItem(it CartItem) *ValidationError {
	return check(validate.Struct(it), "")
}

// ValidateCartItems validates a deserialized cart wholesale. Any bad
// element, or a duplicated product id, rejects the whole list; callers
// treat that as corrupt storage and discard it.
func ValidateCartItems(items []CartItem) *ValidationError {
	var issues []FieldIssue
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if verr := check(validate.Struct(it), fmt.Sprintf("[%d].", i)); verr != nil {
			issues = append(issues, verr.Issues...)
		}
		if seen[it.Product.ID] {
			issues = append(issues, FieldIssue{
				Field:   fmt.Sprintf("[%d].product.id", i),
				Rule:    "unique",
				Message: fmt.Sprintf("duplicate cart entry for product %q", it.Product.ID),
			})
		}
		seen[it.Product.ID] = true
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// check translates go-playground errors into the structured issue list.
// prefix is prepended to field paths when validating slice elements.
func check(err error, prefix string) *ValidationError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Issues: []FieldIssue{{
			Field:   prefix,
			Rule:    "invalid",
			Message: err.Error(),
		}}}
	}
	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{
			Field:   prefix + fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: fe.Error(),
		})
	}
	return &ValidationError{Issues: issues}
}

// fieldPath drops the root struct name from a validator namespace and
// lowercases the remaining segments, so "CartItem.Product.Price" becomes
// "product.price".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
