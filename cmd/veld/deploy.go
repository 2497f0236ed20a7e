package main

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/veld-ui/veld/internal/config"
	verrs "github.com/veld-ui/veld/internal/errors"
)

func deployCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload a rendered directory to S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cfg.Deploy.Bucket == "" {
				return verrs.New("E110", verrs.CategoryCLI, "deploy.bucket is not configured").
					WithSuggestion("set deploy.bucket in veld.yaml")
			}

			client, err := newS3Client(cfg.Deploy.Region)
			if err != nil {
				return err
			}

			n, err := uploadDir(cmd.Context(), client, cfg.Deploy, dir)
			if err != nil {
				return err
			}
			success("deployed %d files to s3://%s/%s", n, cfg.Deploy.Bucket, cfg.Deploy.Prefix)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "dist", "directory to upload")
	return cmd
}

// newS3Client builds a client from the standard AWS environment variables.
func newS3Client(region string) (*s3.Client, error) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, verrs.New("E111", verrs.CategoryCLI, "missing AWS credentials").
			WithSuggestion("export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	creds := aws.Credentials{
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
	}
	return s3.New(s3.Options{
		Region: region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return creds, nil
		}),
	}), nil
}

func uploadDir(ctx context.Context, client *s3.Client, cfg config.DeployConfig, dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := path.Join(cfg.Prefix, filepath.ToSlash(rel))

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(p)))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(cfg.Bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		info("uploaded %s", key)
		count++
		return nil
	})
	return count, err
}
