package config

const (
	EnvOpenAIAPIKey           = "OPENAI_API_KEY"
	EnvSupabaseURL            = "SUPABASE_URL"
	EnvSupabaseServiceRoleKey = "SUPABASE_SERVICE_ROLE_KEY"

	StatusSet    = "set"
	StatusNotSet = "NOT SET"
)

// EnvStatus reports whether each expected secret is present, never its value.
type EnvStatus struct {
	OpenAIAPIKey           string `json:"OPENAI_API_KEY"`
	SupabaseURL            string `json:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `json:"SUPABASE_SERVICE_ROLE_KEY"`
}

// CheckEnv probes the secrets through getenv, normally os.Getenv.
func CheckEnv(getenv func(string) string) EnvStatus {
	status := func(key string) string {
		if getenv(key) != "" {
			return StatusSet
		}
		return StatusNotSet
	}
	return EnvStatus{
		OpenAIAPIKey:           status(EnvOpenAIAPIKey),
		SupabaseURL:            status(EnvSupabaseURL),
		SupabaseServiceRoleKey: status(EnvSupabaseServiceRoleKey),
	}
}
