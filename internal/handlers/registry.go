package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	UserHandler    *UserHandler
	GarageHandler  *GarageHandler
	ExploreHandler *ExploreHandler
	CommentHandler *CommentHandler
	AdminHandler   *AdminHandler
}
