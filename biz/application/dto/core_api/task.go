package core_api

type SubmitTaskReq struct {
	Data map[string]any `json:"data"`
}

type SubmitDocumentTaskReq struct {
	DocumentURL string `json:"document_url"`
}

type SubmitTaskResp struct {
	TaskId  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type TaskStatusReq struct {
	TaskId string `json:"task_id" path:"task_id"`
}

type TaskStatusResp struct {
	TaskId string         `json:"task_id"`
	Status string         `json:"status"`
	Info   map[string]any `json:"info,omitempty"`
	Result map[string]any `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}
