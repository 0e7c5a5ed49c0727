// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

package gateway

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/oops"
)

// errorEnvelope is the boundary shape of a failed request.
type errorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteResult writes either the payload or an error envelope as indented
// JSON. Oops error codes surface in the envelope so callers can branch
// without parsing messages.
func WriteResult(w io.Writer, payload any, err error) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err != nil {
		env := errorEnvelope{Error: true, Message: err.Error()}
		if oopsErr, ok := oops.AsOops(err); ok {
			if code, ok := oopsErr.Code().(string); ok {
				env.Code = code
			}
		}
		if encErr := enc.Encode(env); encErr != nil {
			return fmt.Errorf("failed to write error envelope: %w", encErr)
		}
		return nil
	}

	if encErr := enc.Encode(payload); encErr != nil {
		return fmt.Errorf("failed to write response: %w", encErr)
	}
	return nil
}
