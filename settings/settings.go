package settings

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var lock = &sync.Mutex{}
var singleSettingsInstace *settings

const DEFAULT_ELS_PORT = 9200

type settings struct {
	JWT_SECRET_KEY      string
	MONGO_DB            string
	MONGO_ROOT_USERNAME string
	MONGO_ROOT_PASSWORD string
	MONGO_HOST          string
	MONGO_CONNECTION    string
	NATS_HOST           string
	ELS_HOST            string
	ELS_PASSWORD        string
	ELS_PORT            int
	ELS_USERNAME        string
	COLLEGE_NAME        string
	CLIENT_URL          string
	NODE_ENV            string
}

func newSettings() *settings {
	elsPort := DEFAULT_ELS_PORT
	if port := os.Getenv("ELS_PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			panic(err)
		}
		elsPort = parsed
	}
	return &settings{
		JWT_SECRET_KEY:      os.Getenv("JWT_SECRET_KEY"),
		MONGO_DB:            os.Getenv("MONGO_DB"),
		MONGO_ROOT_USERNAME: os.Getenv("MONGO_ROOT_USERNAME"),
		MONGO_ROOT_PASSWORD: os.Getenv("MONGO_ROOT_PASSWORD"),
		MONGO_HOST:          os.Getenv("MONGO_HOST"),
		MONGO_CONNECTION:    os.Getenv("MONGO_CONNECTION"),
		NATS_HOST:           os.Getenv("NATS_HOST"),
		ELS_HOST:            os.Getenv("ELS_HOST"),
		ELS_PORT:            elsPort,
		ELS_PASSWORD:        os.Getenv("ELS_PASSWORD"),
		ELS_USERNAME:        os.Getenv("ELS_USERNAME"),
		COLLEGE_NAME:        os.Getenv("COLLEGE_NAME"),
		CLIENT_URL:          os.Getenv("CLIENT_URL"),
		NODE_ENV:            os.Getenv("NODE_ENV"),
	}
}

func init() {
	if os.Getenv("NODE_ENV") != "prod" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found")
		}
	}
}

func (s *settings) IsProd() bool {
	return s.NODE_ENV == "prod"
}

// Mongo URI. MONGO_CONNECTION is the scheme ("mongodb", "mongodb+srv")
func (s *settings) MongoURI() string {
	connection := s.MONGO_CONNECTION
	if connection == "" {
		connection = "mongodb"
	}
	if s.MONGO_ROOT_USERNAME == "" {
		return connection + "://" + s.MONGO_HOST
	}
	return connection + "://" + s.MONGO_ROOT_USERNAME + ":" + s.MONGO_ROOT_PASSWORD + "@" + s.MONGO_HOST
}

func GetSettings() *settings {
	if singleSettingsInstace == nil {
		lock.Lock()
		defer lock.Unlock()
		if singleSettingsInstace == nil {
			singleSettingsInstace = newSettings()
		}
	}
	return singleSettingsInstace
}
