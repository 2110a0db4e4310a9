package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	Port      string
	MongoURI  string
	JWTSecret string

	ReplicateAPIKey       string
	ReplicateModelVersion string
	HFAPIKey              string
	GeminiAPIKey          string

	ImgBBAPIKey   string
	ImgurClientID string

	SendGridAPIKey string
	ContactInbox   string

	AWSRegion     string
	AWSBucketName string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	JWTSecret = os.Getenv("JWT_SECRET")

	ReplicateAPIKey = os.Getenv("REPLICATE_API_KEY")
	ReplicateModelVersion = os.Getenv("REPLICATE_MODEL_VERSION")
	if ReplicateModelVersion == "" {
		// IDM-VTON on Replicate, pinned so results stay reproducible.
		ReplicateModelVersion = "c871bb9b046607b680449ecbae55fd8c6d945e0a1948644bf2361b3d021d3ff4"
	}
	HFAPIKey = os.Getenv("HF_API_KEY")
	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	ImgBBAPIKey = os.Getenv("IMGBB_API_KEY")
	ImgurClientID = os.Getenv("IMGUR_CLIENT_ID")

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	ContactInbox = os.Getenv("CONTACT_INBOX")
	if ContactInbox == "" {
		ContactInbox = "support@proteuswear.com"
	}

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "ap-south-1"
	}
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
}

// IsConfigured reports whether a credential holds a usable value.
// Empty strings and "YOUR_..." placeholder sentinels copied from .env
// templates both count as unconfigured.
func IsConfigured(value string) bool {
	return value != "" && !strings.HasPrefix(value, "YOUR_")
}
