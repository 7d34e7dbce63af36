package media

import "context"

// AudioProcessor extracts a video's audio track and cleans it up for speech
// recognition.
type AudioProcessor interface {
	Denoise(ctx context.Context, inputVideo, outputAudio string) error
}

// VideoBurner renders a subtitle file into a video's picture.
type VideoBurner interface {
	BurnSubtitles(ctx context.Context, inputVideo, subtitlePath, outputVideo string) error
}
