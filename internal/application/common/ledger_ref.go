package common

import (
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// ParseLedgerRef resolves the (subject, resource kind) pair a request refers to.
// The resource kind is checked against the catalog.
func ParseLedgerRef(cat *catalog.Catalog, subjectType, subjectID, resourceKind string) (resource.Subject, resource.Kind, error) {
	st, err := resource.ParseSubjectType(subjectType)
	if err != nil {
		return resource.Subject{}, "", err
	}
	subject, err := resource.NewSubject(st, subjectID)
	if err != nil {
		return resource.Subject{}, "", err
	}
	kind, err := cat.ParseResource(resourceKind)
	if err != nil {
		return resource.Subject{}, "", err
	}
	return subject, kind, nil
}
