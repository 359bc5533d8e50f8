package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// Database設定
	Database DatabaseConfig

	// OpenAI設定（Embeddings + レシピ生成）
	OpenAI OpenAIConfig

	// 検索パラメータ
	Retrieval RetrievalConfig

	// HTTP API設定
	HTTP HTTPConfig

	// Chunksファイルのパス（データベースなしで動かす場合）
	ChunkFile string
}

// DatabaseConfig はデータベース接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// OpenAIConfig はOpenAI API設定
type OpenAIConfig struct {
	APIKey             string
	EmbeddingModel     string
	EmbeddingDimension int
	LLMModel           string
	Temperature        float64
	AnswerTemperature  float64 // 理論Q&A用の低めの temperature
}

// RetrievalConfig はハイブリッド検索のパラメータ設定
type RetrievalConfig struct {
	TheoryThreshold float64 // 理論チャンク検索の類似度下限
	SampleThreshold float64 // レシピサンプル検索の類似度下限
	FinalLimit      int     // マージ後の最終件数
}

// HTTPConfig はHTTPサーバ設定
type HTTPConfig struct {
	Port int
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "hairgator"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "hairgator"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OpenAI: OpenAIConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			EmbeddingModel:     getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDimension: getEnvAsInt("OPENAI_EMBEDDING_DIMENSION", 768),
			LLMModel:           getEnv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
			Temperature:        getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			AnswerTemperature:  getEnvAsFloat("OPENAI_ANSWER_TEMPERATURE", 0.3),
		},
		Retrieval: RetrievalConfig{
			TheoryThreshold: getEnvAsFloat("RETRIEVAL_THEORY_THRESHOLD", 0.60),
			SampleThreshold: getEnvAsFloat("RETRIEVAL_SAMPLE_THRESHOLD", 0.65),
			FinalLimit:      getEnvAsInt("RETRIEVAL_FINAL_LIMIT", 5),
		},
		HTTP: HTTPConfig{
			Port: getEnvAsInt("HTTP_PORT", 8080),
		},
		ChunkFile: getEnv("CHUNK_FILE", ""),
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
