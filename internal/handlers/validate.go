package handlers

import "github.com/go-playground/validator/v10"

// Shared request-DTO validator. Model invariants are enforced again by the
// persistence guards; this only rejects obviously malformed payloads early.
var validate = validator.New()
