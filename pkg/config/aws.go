package config

// AWSConfig configures AWS SDK clients.
type AWSConfig struct {
	Region string
	Bucket string
}

func loadAWSConfig() AWSConfig {
	return AWSConfig{
		Region: getEnv("AWS_REGION", "us-east-1"),
		Bucket: getEnv("AWS_BUCKET", "taskx-uploads"),
	}
}
