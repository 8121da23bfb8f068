package request

type GetStateRequest struct {
	UserId string `json:"user_id"`
}

type BeginConsultationRequest struct {
	UserId string `json:"user_id"`
}

type SendMessageRequest struct {
	UserId  string `json:"user_id"`
	Content string `json:"content"`
}

type EndConsultationRequest struct {
	UserId string `json:"user_id"`
}

type ResetRequest struct {
	UserId string `json:"user_id"`
}
