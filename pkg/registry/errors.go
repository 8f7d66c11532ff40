package registry

import (
	"errors"
	"fmt"
	"os"
)

// Sentinel errors used for simple equality-style checks.
var (
	// ErrNotExist indicates a target or source file does not exist.
	ErrNotExist = os.ErrNotExist

	// ErrMarkerNotFound indicates the anchor marker is absent from the
	// document, meaning its structure changed unexpectedly.
	ErrMarkerNotFound = errors.New("registry: anchor marker not found")

	// ErrContainerNotFound indicates no closing delimiter was found before
	// the anchor marker.
	ErrContainerNotFound = errors.New("registry: container delimiter not found")

	// ErrStructuralMismatch indicates the delimiters between the registry
	// opening and the computed insertion point do not balance, so a blind
	// splice would corrupt the document.
	ErrStructuralMismatch = errors.New("registry: structural mismatch")

	// ErrDuplicateKey indicates an appended record's id collides with
	// another record in the batch or an entry already in the document.
	ErrDuplicateKey = errors.New("registry: duplicate key")

	// ErrMalformedRecord indicates a record cannot be rendered.
	ErrMalformedRecord = errors.New("registry: malformed record")
)

// MarkerNotFoundError carries the missing anchor marker for callers that
// need richer diagnostic information.
type MarkerNotFoundError struct {
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("anchor marker not found: %q", e.Marker)
}

func (e *MarkerNotFoundError) Is(target error) bool {
	return target == ErrMarkerNotFound
}

func (e *MarkerNotFoundError) Unwrap() error { return ErrMarkerNotFound }

// NewMarkerNotFoundError constructs a typed MarkerNotFoundError.
func NewMarkerNotFoundError(marker string) error {
	return &MarkerNotFoundError{Marker: marker}
}

// IsMarkerNotFound reports whether err is (or wraps) a missing-anchor condition.
func IsMarkerNotFound(err error) bool {
	return errors.Is(err, ErrMarkerNotFound)
}

// ContainerNotFoundError reports that no closing delimiter precedes the
// anchor marker at the given offset.
type ContainerNotFoundError struct {
	Marker string
	Offset int
}

func (e *ContainerNotFoundError) Error() string {
	return fmt.Sprintf("no closing delimiter before marker %q at offset %d", e.Marker, e.Offset)
}

func (e *ContainerNotFoundError) Is(target error) bool {
	return target == ErrContainerNotFound
}

func (e *ContainerNotFoundError) Unwrap() error { return ErrContainerNotFound }

// NewContainerNotFoundError constructs a typed ContainerNotFoundError.
func NewContainerNotFoundError(marker string, offset int) error {
	return &ContainerNotFoundError{Marker: marker, Offset: offset}
}

// IsContainerNotFound reports whether err is (or wraps) a missing-container
// condition.
func IsContainerNotFound(err error) bool {
	return errors.Is(err, ErrContainerNotFound)
}

// StructuralMismatchError describes an unbalanced delimiter count between
// the registry opening and the computed insertion point.
type StructuralMismatchError struct {
	Msg string
}

func (e *StructuralMismatchError) Error() string {
	if e.Msg == "" {
		return "structural mismatch"
	}
	return fmt.Sprintf("structural mismatch: %s", e.Msg)
}

func (e *StructuralMismatchError) Is(target error) bool {
	return target == ErrStructuralMismatch
}

func (e *StructuralMismatchError) Unwrap() error { return ErrStructuralMismatch }

// NewStructuralMismatchError constructs a StructuralMismatchError with a
// human message.
func NewStructuralMismatchError(msg string) error {
	return &StructuralMismatchError{Msg: msg}
}

// IsStructuralMismatch reports whether err is (or wraps) a structural-mismatch
// condition.
func IsStructuralMismatch(err error) bool {
	return errors.Is(err, ErrStructuralMismatch)
}

// DuplicateKeyError carries the colliding entry key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %q", e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// NewDuplicateKeyError constructs a typed DuplicateKeyError.
func NewDuplicateKeyError(key string) error {
	return &DuplicateKeyError{Key: key}
}

// IsDuplicateKey reports whether err is (or wraps) a duplicate-key condition.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// MalformedRecordError carries the id (possibly empty) of a record that
// cannot be rendered and the reason.
type MalformedRecordError struct {
	ID  string
	Msg string
}

func (e *MalformedRecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed record: %s", e.Msg)
	}
	return fmt.Sprintf("malformed record %q: %s", e.ID, e.Msg)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// NewMalformedRecordError constructs a typed MalformedRecordError.
func NewMalformedRecordError(id, msg string) error {
	return &MalformedRecordError{ID: id, Msg: msg}
}

// IsMalformedRecord reports whether err is (or wraps) a malformed-record
// condition.
func IsMalformedRecord(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}
