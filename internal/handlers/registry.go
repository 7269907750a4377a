package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	SubmissionHandler *SubmissionHandler
	AdminHandler      *AdminHandler
	ContactHandler    *ContactHandler
	FileHandler       *FileHandler
	StaticHandler     *StaticHandler
}
