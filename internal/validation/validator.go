package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/rules"
)

// Validator checks struct tags and the cross-field rules tags cannot express.
type Validator struct {
	v *validator.Validate
}

type enum interface{ IsValid() bool }

// New builds a Validator. It is safe for concurrent use.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enum)
		return ok && e.IsValid()
	})
	return &Validator{v: v}
}

// Struct runs the tag rules on s.
func (val *Validator) Struct(s interface{}) Errors {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Reason: err.Error()}}
	}
	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Error{Field: fieldPath(fe), Reason: reason(fe)})
	}
	return out
}

// fieldPath drops the struct name from the namespace: "Order.items[0].quantity" -> "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "enum":
		return fmt.Sprintf("has unknown value %q", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// MenuItem also requires cost to stay below price.
func (val *Validator) MenuItem(m models.MenuItem) error {
	errs := val.Struct(m)
	if m.Price.IsPositive() && m.Cost.IsPositive() && m.Cost.GreaterThanOrEqual(m.Price) {
		errs = append(errs, Error{Field: "cost", Reason: "must be lower than price"})
	}
	return errs.OrNil()
}

// InventoryItem also requires min_stock <= max_stock.
func (val *Validator) InventoryItem(i models.InventoryItem) error {
	errs := val.Struct(i)
	if i.MinStock > i.MaxStock {
		errs = append(errs, Error{Field: "min_stock", Reason: "must not exceed max_stock"})
	}
	return errs.OrNil()
}

func (val *Validator) Customer(c models.Customer) error {
	return val.Struct(c).OrNil()
}

func (val *Validator) Order(o models.Order) error {
	return val.Struct(o).OrNil()
}

// Purchase also requires a delivery date.
func (val *Validator) Purchase(p models.Purchase) error {
	errs := val.Struct(p)
	if p.DeliveryDate.IsZero() {
		errs = append(errs, Error{Field: "delivery_date", Reason: "is required"})
	}
	return errs.OrNil()
}

func (val *Validator) StaffMember(s models.StaffMember) error {
	return val.Struct(s).OrNil()
}

// ScheduleEntry also requires a date and HH:MM shift bounds.
func (val *Validator) ScheduleEntry(e models.ScheduleEntry) error {
	errs := val.Struct(e)
	if e.Date.IsZero() {
		errs = append(errs, Error{Field: "date", Reason: "is required"})
	}
	if e.StartTime != "" && e.EndTime != "" {
		if _, err := rules.ScheduleHours(e.StartTime, e.EndTime); err != nil {
			errs = append(errs, Error{Field: "start_time", Reason: "must be HH:MM"})
		}
	}
	return errs.OrNil()
}
