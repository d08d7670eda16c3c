package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Materials.Folder == "" {
		cfg.Materials.Folder = "./course_materials"
	}
	if cfg.Materials.ChunkSize == 0 {
		cfg.Materials.ChunkSize = 700
	}
	if cfg.Materials.ChunkOverlap == 0 {
		cfg.Materials.ChunkOverlap = 150
	}
	// DigestMaxChars 0 = unlimited: the digest is handed to the model whole.
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.deepseek.com"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "deepseek-chat"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "DEEPSEEK_API_KEY"
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1500
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 120
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = "file"
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = "./data/history"
	}
	if cfg.History.DatabasePath == "" {
		cfg.History.DatabasePath = "./data/history.db"
	}
	if cfg.Escalation.LogPath == "" {
		cfg.Escalation.LogPath = "./data/pending_for_human.jsonl"
	}
}
