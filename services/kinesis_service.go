package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appconfig "warehouse-surveillance/be/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/kinesisvideo"
	kvstypes "github.com/aws/aws-sdk-go-v2/service/kinesisvideo/types"
	"github.com/aws/aws-sdk-go-v2/service/kinesisvideoarchivedmedia"
	kvamtypes "github.com/aws/aws-sdk-go-v2/service/kinesisvideoarchivedmedia/types"
	"github.com/aws/smithy-go"
)

const (
	hlsExpirySeconds = 3600
	signTimeout      = 30 * time.Second
)

// KinesisService signs HLS streaming session URLs against Kinesis Video
// Streams. Each signing is a single attempt, no retries.
type KinesisService struct {
	awsCfg aws.Config
}

func NewKinesisService(cfg appconfig.AWSConfig) (*KinesisService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &KinesisService{awsCfg: awsCfg}, nil
}

// HLSSession is a signed live-playback session for one stream.
type HLSSession struct {
	StreamARN    string
	URL          string
	DataEndpoint string
	ExpiresIn    int32
}

// StreamNameFromARN pulls the stream name out of an ARN of the form
// arn:aws:kinesisvideo:region:account:stream/<name>/<creation-ts>.
func StreamNameFromARN(streamARN string) (string, error) {
	parts := strings.Split(streamARN, "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", errors.New("invalid stream ARN format")
	}
	return parts[1], nil
}

// GetHLSStreamingURL resolves the archived-media data endpoint for the
// stream and signs a LIVE playback session URL against it.
func (s *KinesisService) GetHLSStreamingURL(ctx context.Context, streamARN string) (*HLSSession, error) {
	ctx, cancel := context.WithTimeout(ctx, signTimeout)
	defer cancel()

	kvs := kinesisvideo.NewFromConfig(s.awsCfg)
	endpointOut, err := kvs.GetDataEndpoint(ctx, &kinesisvideo.GetDataEndpointInput{
		StreamARN: aws.String(streamARN),
		APIName:   kvstypes.APINameGetHlsStreamingSessionUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get data endpoint: %w", err)
	}
	if endpointOut.DataEndpoint == nil {
		return nil, errors.New("no data endpoint returned for stream")
	}
	dataEndpoint := *endpointOut.DataEndpoint

	archived := kinesisvideoarchivedmedia.NewFromConfig(s.awsCfg, func(o *kinesisvideoarchivedmedia.Options) {
		o.BaseEndpoint = aws.String(dataEndpoint)
	})
	hlsOut, err := archived.GetHLSStreamingSessionURL(ctx, &kinesisvideoarchivedmedia.GetHLSStreamingSessionURLInput{
		StreamARN:    aws.String(streamARN),
		PlaybackMode: kvamtypes.HLSPlaybackModeLive,
		HLSFragmentSelector: &kvamtypes.HLSFragmentSelector{
			FragmentSelectorType: kvamtypes.HLSFragmentSelectorTypeServerTimestamp,
		},
		Expires: aws.Int32(hlsExpirySeconds),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign HLS session URL: %w", err)
	}
	if hlsOut.HLSStreamingSessionURL == nil {
		return nil, errors.New("no HLS session URL returned for stream")
	}

	return &HLSSession{
		StreamARN:    streamARN,
		URL:          *hlsOut.HLSStreamingSessionURL,
		DataEndpoint: dataEndpoint,
		ExpiresIn:    hlsExpirySeconds,
	}, nil
}

// AWSErrorDetail unwraps an AWS API error so the handler can surface the
// service's own code and message as a client-correctable failure.
func AWSErrorDetail(err error) (code, message string, ok bool) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode(), apiErr.ErrorMessage(), true
	}
	return "", "", false
}
