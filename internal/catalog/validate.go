package catalog

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Validate checks a document's structure and its count invariants:
// every category's count equals its number of reasons and total_reasons
// equals the sum of the counts.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	if err := validatorInstance().Struct(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	sum := 0
	for _, c := range doc.Categories {
		if c.Count != len(c.Reasons) {
			return fmt.Errorf("%w: category %q has count %d but %d reasons",
				ErrInvalidDocument, c.Name, c.Count, len(c.Reasons))
		}
		sum += c.Count
	}
	if sum != doc.TotalReasons {
		return fmt.Errorf("%w: total_reasons is %d but categories hold %d",
			ErrInvalidDocument, doc.TotalReasons, sum)
	}

	return nil
}
