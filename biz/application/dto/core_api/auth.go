package core_api

type UserInfo struct {
	UserId string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type VerifyTokenReq struct {
	Token string `json:"token"`
}

type VerifyTokenResp struct {
	Valid bool      `json:"valid"`
	User  *UserInfo `json:"user,omitempty"`
	Error string    `json:"error,omitempty"`
}

type MeResp struct {
	UserId string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type AuthConfigResp struct {
	SupabaseConfigured bool   `json:"supabase_configured"`
	SupabaseURL        string `json:"supabase_url,omitempty"`
	SupabaseAnonKey    string `json:"supabase_anon_key,omitempty"`
}
