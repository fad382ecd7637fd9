package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	GoogleAds GoogleAds `mapstructure:",squash"`
	GA4       GA4       `mapstructure:",squash"`
	Sync      Sync      `mapstructure:",squash"`
	Projects  *Registry `mapstructure:"-"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Auth struct {
	Secret            string `mapstructure:"auth_secret"`
	AdminUser         string `mapstructure:"admin_user"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

type GoogleAds struct {
	BaseURL         string        `mapstructure:"google_ads_base_url"`
	APIVersion      string        `mapstructure:"google_ads_api_version"`
	TokenURL        string        `mapstructure:"google_ads_token_url"`
	DeveloperToken  string        `mapstructure:"google_ads_developer_token"`
	ClientID        string        `mapstructure:"google_ads_client_id"`
	ClientSecret    string        `mapstructure:"google_ads_client_secret"`
	RefreshToken    string        `mapstructure:"google_ads_refresh_token"`
	LoginCustomerID string        `mapstructure:"google_ads_login_customer_id"`
	Timeout         time.Duration `mapstructure:"google_ads_timeout"`
}

type GA4 struct {
	MarketingAPIURL string        `mapstructure:"ga4_marketing_api_url"`
	Timeout         time.Duration `mapstructure:"ga4_timeout"`
	Concurrency     int           `mapstructure:"ga4_concurrency"`
}

type Sync struct {
	Projects             []string `mapstructure:"ppc_projects"`
	ProjectsFile         string   `mapstructure:"projects_file"`
	ScheduleEnabled      bool     `mapstructure:"sync_schedule_enabled"`
	ScheduleTimezone     string   `mapstructure:"sync_schedule_timezone"`
	ScheduleHour         int      `mapstructure:"sync_schedule_hour"`
	ScheduleMinute       int      `mapstructure:"sync_schedule_minute"`
	SaveGA4OnDailySync   bool     `mapstructure:"save_ga4_on_daily_sync"`
	ContinueOnError      bool     `mapstructure:"sync_continue_on_error"`
	CampaignNamePatterns []string `mapstructure:"sync_campaign_name_patterns"`
	BatchDays            int      `mapstructure:"sync_batch_days"`
	DelaySeconds         int      `mapstructure:"sync_delay_seconds"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ppc_flight_recorder?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 1) // uma conexão por execução

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("ADMIN_USER", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_API_VERSION", "v18")
	viper.SetDefault("GOOGLE_ADS_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_ADS_REFRESH_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_TIMEOUT", "60s")

	viper.SetDefault("GA4_MARKETING_API_URL", "")
	viper.SetDefault("GA4_TIMEOUT", "120s")
	viper.SetDefault("GA4_CONCURRENCY", 1) // relatórios em sequência por padrão

	viper.SetDefault("PPC_PROJECTS", "the-pinch")
	viper.SetDefault("PROJECTS_FILE", "")
	viper.SetDefault("SYNC_SCHEDULE_ENABLED", true)
	viper.SetDefault("SYNC_SCHEDULE_TIMEZONE", "America/New_York")
	viper.SetDefault("SYNC_SCHEDULE_HOUR", 21) // 21:30 no fuso configurado
	viper.SetDefault("SYNC_SCHEDULE_MINUTE", 30)
	viper.SetDefault("SAVE_GA4_ON_DAILY_SYNC", false)
	viper.SetDefault("SYNC_CONTINUE_ON_ERROR", false) // fail-fast entre contas
	viper.SetDefault("SYNC_CAMPAIGN_NAME_PATTERNS", "")
	viper.SetDefault("SYNC_BATCH_DAYS", 30)   // janela do backfill histórico
	viper.SetDefault("SYNC_DELAY_SECONDS", 2) // pausa entre projetos no backfill

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "production")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Sync.Projects = cleanList(config.Sync.Projects)
	config.Sync.CampaignNamePatterns = cleanList(config.Sync.CampaignNamePatterns)
	config.Server.AllowedOrigins = cleanList(config.Server.AllowedOrigins)

	config.Projects, err = LoadRegistry(config.Sync.ProjectsFile, os.Getenv)
	if err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a string de conexão; para sqlite3 a URL é o caminho do arquivo
func BuildDSN(db Database) string {
	if db.Driver == "sqlite3" {
		return db.URL
	}
	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
