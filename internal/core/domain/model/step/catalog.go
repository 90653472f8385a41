package step

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Format identifies a field format validator. Formats are dispatched through
// a validator table in the services package, so adding a format does not
// touch validation call sites.
type Format string

const (
	// FormatCreditCard checks the mod-10 checksum of a payment card number.
	FormatCreditCard Format = "credit_card"
	// FormatExpiry checks an MM/YY expiry date.
	FormatExpiry Format = "expiry"
	// FormatCVV checks a 3- or 4-digit card verification value.
	FormatCVV Format = "cvv"
)

// Rule describes the validation applied to one submitted field of a step.
// Zero-value fields mean "no check": an empty Format skips format
// validation and a nil Min skips the numeric minimum.
type Rule struct {
	Required bool
	Format   Format
	Min      *float64
}

// Definition is the static configuration of one checkout step. Definitions
// are value objects owned by the Catalog and never change after
// construction.
type Definition struct {
	name            string
	order           int
	required        bool
	canSkip         bool
	validationRules map[string]Rule
	dependencies    []string
	errorMessages   map[string]string
}

// NewDefinition creates a step definition. Name must be non-empty and order
// positive; rules, dependencies, and messages may be nil.
func NewDefinition(
	name string,
	order int,
	required bool,
	canSkip bool,
	validationRules map[string]Rule,
	dependencies []string,
	errorMessages map[string]string,
) (Definition, error) {
	if name == "" {
		return Definition{}, errs.NewValueIsRequiredError("name")
	}
	if order < 1 {
		return Definition{}, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("%d is not greater than 0", order))
	}

	return Definition{
		name:            name,
		order:           order,
		required:        required,
		canSkip:         canSkip,
		validationRules: validationRules,
		dependencies:    dependencies,
		errorMessages:   errorMessages,
	}, nil
}

// Name returns the unique step name.
func (d Definition) Name() string {
	return d.name
}

// Order returns the 1-based position of the step in the funnel.
func (d Definition) Order() int {
	return d.order
}

// Required reports whether the step must be completed to finish checkout.
func (d Definition) Required() bool {
	return d.required
}

// CanSkip reports whether progression past this step is allowed without
// completing it first.
func (d Definition) CanSkip() bool {
	return d.canSkip
}

// ValidationRules returns the field rules. The returned map is shared and
// must be treated as read-only.
func (d Definition) ValidationRules() map[string]Rule {
	return d.validationRules
}

// Dependencies returns the names of steps that must be completed before this
// step becomes available. The returned slice must be treated as read-only.
func (d Definition) Dependencies() []string {
	return d.dependencies
}

// ErrorMessage returns the configured required-check message for a field and
// whether one is configured.
func (d Definition) ErrorMessage(field string) (string, bool) {
	msg, ok := d.errorMessages[field]
	return msg, ok
}

// Catalog is the immutable, process-wide set of step definitions. It is
// built once at startup, shared by all sessions, and safe for unlimited
// concurrent readers.
type Catalog struct {
	byName  map[string]Definition
	byOrder map[int]Definition
	ordered []Definition
}

// NewCatalog creates a catalog from definitions, rejecting duplicate names
// or orders. Definitions are kept sorted by order.
func NewCatalog(definitions []Definition) (Catalog, error) {
	catalog := Catalog{
		byName:  make(map[string]Definition, len(definitions)),
		byOrder: make(map[int]Definition, len(definitions)),
		ordered: make([]Definition, 0, len(definitions)),
	}

	for _, def := range definitions {
		if _, exists := catalog.byName[def.name]; exists {
			return Catalog{}, errs.NewValueIsInvalidErrorWithCause("name",
				fmt.Errorf("duplicate step name %q", def.name))
		}
		if _, exists := catalog.byOrder[def.order]; exists {
			return Catalog{}, errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("duplicate step order %d", def.order))
		}
		catalog.byName[def.name] = def
		catalog.byOrder[def.order] = def
	}

	for order := 1; order <= len(definitions); order++ {
		def, ok := catalog.byOrder[order]
		if !ok {
			return Catalog{}, errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("step orders are not contiguous: missing order %d", order))
		}
		catalog.ordered = append(catalog.ordered, def)
	}

	return catalog, nil
}

// ByName looks up a definition by step name.
func (c Catalog) ByName(name string) (Definition, bool) {
	def, ok := c.byName[name]
	return def, ok
}

// ByOrder looks up a definition by its position in the funnel.
func (c Catalog) ByOrder(order int) (Definition, bool) {
	def, ok := c.byOrder[order]
	return def, ok
}

// Definitions returns all definitions in funnel order. The returned slice
// must be treated as read-only.
func (c Catalog) Definitions() []Definition {
	return c.ordered
}

// Len returns the number of steps in the catalog.
func (c Catalog) Len() int {
	return len(c.ordered)
}

// Canonical step names of the checkout funnel.
const (
	CartStep         = "cart"
	ShippingStep     = "shipping"
	BillingStep      = "billing"
	PaymentStep      = "payment"
	ReviewStep       = "review"
	ConfirmationStep = "confirmation"
)

// DefaultCatalog builds the six-step checkout funnel: cart, shipping,
// billing, payment, review, and an optional confirmation step. Each required
// step depends on its immediate predecessor; confirmation is skippable.
func DefaultCatalog() Catalog {
	minTotal := 0.01

	cart, _ := NewDefinition(CartStep, 1, true, false,
		map[string]Rule{
			"hasItems":    {Required: true},
			"totalAmount": {Required: true, Min: &minTotal},
		},
		nil,
		map[string]string{
			"hasItems":    "Cart cannot be empty",
			"totalAmount": "Order total is required",
		})

	shipping, _ := NewDefinition(ShippingStep, 2, true, false,
		map[string]Rule{
			"address":        {Required: true},
			"city":           {Required: true},
			"postalCode":     {Required: true},
			"country":        {Required: true},
			"shippingMethod": {Required: true},
		},
		[]string{CartStep},
		map[string]string{
			"address":        "Shipping address is required",
			"shippingMethod": "Please select a shipping method",
		})

	billing, _ := NewDefinition(BillingStep, 3, true, false,
		map[string]Rule{
			"billingAddress":    {Required: true},
			"billingCity":       {Required: true},
			"billingPostalCode": {Required: true},
		},
		[]string{ShippingStep},
		map[string]string{
			"billingAddress": "Billing address is required",
		})

	payment, _ := NewDefinition(PaymentStep, 4, true, false,
		map[string]Rule{
			"cardNumber":     {Required: true, Format: FormatCreditCard},
			"expiryDate":     {Required: true, Format: FormatExpiry},
			"cvv":            {Required: true, Format: FormatCVV},
			"cardholderName": {Required: true},
		},
		[]string{BillingStep},
		map[string]string{
			"cardNumber":     "Card number is required",
			"expiryDate":     "Expiry date is required",
			"cvv":            "CVV is required",
			"cardholderName": "Cardholder name is required",
		})

	review, _ := NewDefinition(ReviewStep, 5, true, false,
		map[string]Rule{
			"termsAccepted": {Required: true},
		},
		[]string{PaymentStep},
		map[string]string{
			"termsAccepted": "You must accept the terms and conditions",
		})

	confirmation, _ := NewDefinition(ConfirmationStep, 6, false, true,
		nil,
		[]string{ReviewStep},
		nil)

	catalog, err := NewCatalog([]Definition{cart, shipping, billing, payment, review, confirmation})
	if err != nil {
		// The default catalog is static; a construction error here is a
		// programming bug, not a runtime condition.
		panic(err)
	}
	return catalog
}
