package dto

// PublicConfigResponse 前端初始化 Supabase 客户端所需的公开配置
type PublicConfigResponse struct {
	SupabaseURL     string `json:"supabaseUrl"`
	SupabaseAnonKey string `json:"supabaseAnonKey"`
}
