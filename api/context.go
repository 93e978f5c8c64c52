package api

import (
	"context"

	"github.com/inkwellcms/inkwell-backend/content"
)

type keyType string

const viewerKey keyType = "viewer"

// ctxWithViewer adds the authenticated viewer to the context
func ctxWithViewer(ctx context.Context, viewer content.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// ctxGetViewer retrieves the viewer from the context; an unauthenticated
// request yields the anonymous zero value.
func ctxGetViewer(ctx context.Context) content.Viewer {
	if v, ok := ctx.Value(viewerKey).(content.Viewer); ok {
		return v
	}
	return content.Viewer{}
}
