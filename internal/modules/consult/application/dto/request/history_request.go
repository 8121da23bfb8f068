package request

type GetSessionListRequest struct {
	UserId string `json:"user_id"`
	Limit  int    `json:"limit"`
}

type GetSessionDetailRequest struct {
	SessionId string `json:"session_id"`
}
