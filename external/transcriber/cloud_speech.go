package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/foxseedlab/jimaku/external/gcp"
	"github.com/foxseedlab/jimaku/internal/subtitle"
	"github.com/foxseedlab/jimaku/internal/transcriber"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
)

const (
	speechAPIEndpointPort = 443
	recognizeMaxAttempts  = 3
	recognizeRetryBackoff = 2 * time.Second
)

type CloudSpeechConfig struct {
	ProjectID       string
	CredentialsJSON string
	Language        string
	Location        string
	SampleRateHertz int
}

type CloudSpeechTranscriber struct {
	projectID       string
	credentialsJSON string
	language        string
	location        string
	sampleRateHertz int32
	retryBackoff    time.Duration
}

func NewCloudSpeechTranscriber(cfg CloudSpeechConfig) transcriber.Transcriber {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}

	return &CloudSpeechTranscriber{
		projectID:       cfg.ProjectID,
		credentialsJSON: cfg.CredentialsJSON,
		language:        cfg.Language,
		location:        location,
		sampleRateHertz: int32(cfg.SampleRateHertz),
		retryBackoff:    recognizeRetryBackoff,
	}
}

func (t *CloudSpeechTranscriber) Transcribe(ctx context.Context, audioURI string) ([]subtitle.TimedWord, error) {
	slog.Info("starting cloud speech long running recognize", "audio_uri", audioURI, "location", t.location, "language", t.language)

	opts, err := gcp.ClientOptions(t.projectID, t.credentialsJSON)
	if err != nil {
		return nil, err
	}
	if t.location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", t.location, speechAPIEndpointPort)))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	req := t.buildRequest(audioURI)
	var resp *speechpb.LongRunningRecognizeResponse
	for attempt := 1; ; attempt++ {
		resp, err = recognize(ctx, client, req)
		if err == nil {
			break
		}
		if attempt >= recognizeMaxAttempts || !isRetryableRecognizeError(err) {
			return nil, fmt.Errorf("long running recognize: %w", err)
		}
		slog.Warn("speech recognize failed with retryable error; retrying", "error", err, "attempt", attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.retryBackoff * time.Duration(attempt)):
		}
	}

	words := timedWordsFromResponse(resp)
	slog.Info("cloud speech recognize completed", "audio_uri", audioURI, "results", len(resp.GetResults()), "words", len(words))
	return words, nil
}

func (t *CloudSpeechTranscriber) buildRequest(audioURI string) *speechpb.LongRunningRecognizeRequest {
	return &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:              speechpb.RecognitionConfig_MP3,
			SampleRateHertz:       t.sampleRateHertz,
			LanguageCode:          t.language,
			EnableWordTimeOffsets: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: audioURI},
		},
	}
}

func recognize(ctx context.Context, client *speech.Client, req *speechpb.LongRunningRecognizeRequest) (*speechpb.LongRunningRecognizeResponse, error) {
	op, err := client.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

// timedWordsFromResponse flattens the first alternative of every result.
func timedWordsFromResponse(resp *speechpb.LongRunningRecognizeResponse) []subtitle.TimedWord {
	var words []subtitle.TimedWord
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		for _, w := range alts[0].GetWords() {
			words = append(words, subtitle.TimedWord{
				Text:  w.GetWord(),
				Start: offsetFromDuration(w.GetStartTime()),
				End:   offsetFromDuration(w.GetEndTime()),
			})
		}
	}
	return words
}

func offsetFromDuration(d *durationpb.Duration) subtitle.Offset {
	return subtitle.Offset{Seconds: d.GetSeconds(), Nanos: d.GetNanos()}
}

func isRetryableRecognizeError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.Unavailable, codes.ResourceExhausted:
		return true
	}
	return false
}
