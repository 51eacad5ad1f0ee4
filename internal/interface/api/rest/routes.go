package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteToken = RouteAuth + "/token"

	RouteUsers      = RouteApiV1 + "/users"
	RouteUserMe     = RouteUsers + "/me"
	RouteUser       = RouteUsers + "/:user_id"
	RouteUserName   = RouteUser + "/name"
	RouteUserImages = RouteUser + "/images"

	RouteGalleries     = RouteApiV1 + "/galleries"
	RouteGallery       = RouteGalleries + "/:gallery_id"
	RouteGalleryImages = RouteGallery + "/images"

	RouteImages           = RouteApiV1 + "/images"
	RouteImage            = RouteImages + "/:image_id"
	RouteImageContent     = RouteImage + "/content"
	RouteImageDescription = RouteImage + "/description"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
