// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package errors provides the structured error layer for ragchat. Every
// error carries a machine-readable Code whose last dot-segment classifies
// the failure (not_found, invalid_input, failure, ...), which drives both
// programmatic checks and HTTP status mapping.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeStoreNamespaceNotConfigured Code = "store.namespace.not_found"
	CodeStoreReadFailure            Code = "store.file.read_failure"
	CodeStoreWriteFailure           Code = "store.file.write_failure"
	CodeStoreDecodeFailure          Code = "store.file.decode_failure"
	CodeStoreInvalidInput           Code = "store.invalid_input"

	CodeIngestNoViableInput Code = "ingest.input.no_viable_sections"
	CodeIngestEmbedFailure  Code = "ingest.section.embed_failure"
	CodeIngestStoreFailure  Code = "ingest.section.store_failure"

	CodeProviderNotConfigured   Code = "provider.credentials.not_found"
	CodeProviderUnknown         Code = "provider.name.invalid_value"
	CodeProviderEmbedFailure    Code = "provider.embed.upstream_failure"
	CodeProviderCompleteFailure Code = "provider.complete.upstream_failure"
	CodeProviderResponseInvalid Code = "provider.response.invalid_value"

	CodeChatRequestInvalid Code = "chat.request.invalid_input"

	CodeServerBindFailure     Code = "server.listen.bind_failure"
	CodeServerStartFailure    Code = "server.start.failure"
	CodeServerShutdownFailure Code = "server.shutdown.failure"
	CodeServerInternalFailure Code = "server.internal.failure"

	CodeConfigLoadReadFailure      Code = "config.load.read_failure"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"

	CodeSecretNotFound     Code = "secrets.key.not_found"
	CodeSecretInvalidInput Code = "secrets.uri.invalid_input"
	CodeSecretStoreFailure Code = "secrets.backend.failure"

	CodeWidgetRenderFailure Code = "widget.render.failure"

	CodeCLIInputInvalid Code = "cli.input.invalid_input"
	CodeCLISetupFailure Code = "cli.setup.failure"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func FieldNamespace(value string) Attr {
	return Field("namespace", value)
}

func FieldProvider(value string) Attr {
	return Field("provider", value)
}

func FieldDocumentID(value string) Attr {
	return Field("document_id", value)
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(code).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).Wrapf(err, format, args...)
}

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}

	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}

	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}

	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid_input" || r == "invalid_value"
}

func IsUpstreamFailure(err error) bool {
	return reason(CodeOf(err)) == "upstream_failure"
}

// HTTPStatus maps an error to the status code the wire contract expects:
// not-found outcomes are 404, validation failures are 400, and everything
// else (including completion upstream failures) is a 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsNotFound(err):
		return http.StatusNotFound
	case IsInvalidInput(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Join(errs ...error) error {
	return oops.Code(CodeServerInternalFailure).Wrap(stderrors.Join(errs...))
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}

	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
