package sqlfront

import (
	"fmt"

	"github.com/ampere207/hyper-vault/internal/apperr"
)

func parseErrorf(format string, args ...any) error {
	return apperr.New(apperr.CodeSyntax, fmt.Sprintf(format, args...))
}
