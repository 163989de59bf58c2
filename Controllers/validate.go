package Controllers

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared by every controller; validator instances cache struct
// metadata, so there should be exactly one.
var validate = validator.New()
