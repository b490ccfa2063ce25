package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData carries the authenticated viewer profile supplied by the
// external identity provider. DepartmentID and Level are optional: anonymous
// or incomplete profiles leave them unset.
type RequestData struct {
	UserID        uuid.UUID
	InstitutionID uuid.UUID
	DepartmentID  *uuid.UUID
	Level         *int
	Moderator     bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
