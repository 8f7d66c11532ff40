package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jlrickert/splice/pkg/project"
	"github.com/jlrickert/splice/pkg/registry"
)

func renderUserError(err error, deps *Deps) string {
	if err == nil {
		return ""
	}

	var markerErr *registry.MarkerNotFoundError
	if errors.As(err, &markerErr) {
		return fmt.Sprintf("anchor marker %q not found in the target; check the target's anchor in splice.yaml", markerErr.Marker)
	}

	var containerErr *registry.ContainerNotFoundError
	if errors.As(err, &containerErr) {
		return fmt.Sprintf("no closing '}' found before the anchor marker %q; the registry object may be missing or empty", containerErr.Marker)
	}

	var dupErr *registry.DuplicateKeyError
	if errors.As(err, &dupErr) {
		return fmt.Sprintf("duplicate entry id %q; ids must be unique across the registry and the batch", dupErr.Key)
	}

	var structErr *registry.StructuralMismatchError
	if errors.As(err, &structErr) {
		if isDebugLogLevel(deps) {
			return fmt.Sprintf("registry structure check failed: %s", structErr.Msg)
		}
		return "registry structure check failed; run lint for details"
	}

	var targetErr *project.TargetNotFoundError
	if errors.As(err, &targetErr) {
		return fmt.Sprintf("no target %q in splice.yaml", targetErr.Alias)
	}

	return err.Error()
}

func isDebugLogLevel(deps *Deps) bool {
	if deps == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(deps.LogLevel), "debug")
}
