package model

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required,dive,keys,required,max=64,endkeys,max=10000"`
}

type ReplaceServicesRequest struct {
	Services []Service `json:"services" binding:"required,dive"`
}

type ReplaceGalleryRequest struct {
	Gallery []MediaItem `json:"gallery" binding:"required,dive"`
}

type ReplaceVideoGalleryRequest struct {
	VideoGallery []MediaItem `json:"video_gallery" binding:"required,dive"`
}

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required,max=120"`
	ServiceName string `json:"service_name" binding:"max=120"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string `json:"time" binding:"required,datetime=15:04"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=Pendente Concluído Cancelado"`
}

type ChatTurn struct {
	Role string `json:"role" binding:"required,oneof=user model"`
	Text string `json:"text" binding:"required,max=4000"`
}

type ChatRequest struct {
	Message string     `json:"message" binding:"required,max=2000"`
	History []ChatTurn `json:"history" binding:"max=20,dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
