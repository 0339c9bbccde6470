package transcript

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/wahlandcase/attuned.standup/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/transcribestreaming"
	"github.com/aws/aws-sdk-go-v2/service/transcribestreaming/types"
)

// audioChunkSize matches the capture frame size: 8 KiB of 16 kHz mono
// 16-bit PCM is roughly a quarter second of audio.
const audioChunkSize = 8 * 1024

// Segment is one piece of recognized speech. Partial segments are
// superseded by the final segment for the same utterance.
type Segment struct {
	Text    string
	Partial bool
}

// StreamSession is a live microphone transcription session. Segments
// are delivered on Segments until the session ends; Wait returns the
// full transcript assembled from the final segments.
type StreamSession struct {
	segments chan Segment
	done     chan struct{}
	cancel   context.CancelFunc

	mu     sync.Mutex
	finals []string
	err    error
}

// NewStreamSession starts the capture command and the Transcribe
// stream and begins pumping audio.
func NewStreamSession(ctx context.Context, cfg *config.TranscribeConfig) (*StreamSession, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	client := transcribestreaming.NewFromConfig(awsCfg)

	out, err := client.StartStreamTranscription(ctx, &transcribestreaming.StartStreamTranscriptionInput{
		LanguageCode:         types.LanguageCode(cfg.Language),
		MediaEncoding:        types.MediaEncodingPcm,
		MediaSampleRateHertz: aws.Int32(int32(cfg.SampleRate)),
	})
	if err != nil {
		return nil, err
	}

	sessionCtx, cancel := context.WithCancel(ctx)

	audio, err := startCapture(sessionCtx, cfg.CaptureCommand)
	if err != nil {
		cancel()
		return nil, err
	}

	return startSession(sessionCtx, cancel, audio, out.GetStream()), nil
}

func startSession(ctx context.Context, cancel context.CancelFunc, audio io.ReadCloser, stream *transcribestreaming.StartStreamTranscriptionEventStream) *StreamSession {
	s := &StreamSession{
		segments: make(chan Segment, 16),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	go s.pumpAudio(ctx, audio, stream)
	go s.collect(ctx, stream)

	return s
}

// Segments returns the channel of recognized segments. It is closed
// when the session ends.
func (s *StreamSession) Segments() <-chan Segment {
	return s.segments
}

// Stop ends the recording. Remaining results are still delivered on
// Segments before it closes.
func (s *StreamSession) Stop() {
	s.cancel()
}

// Wait blocks until the session has fully drained and returns the
// final transcript.
func (s *StreamSession) Wait() (string, error) {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.finals, " "), s.err
}

// pumpAudio forwards PCM chunks from the capture command to the
// Transcribe input stream, then closes the input side so the service
// flushes its remaining results.
func (s *StreamSession) pumpAudio(ctx context.Context, audio io.ReadCloser, stream *transcribestreaming.StartStreamTranscriptionEventStream) {
	defer audio.Close()
	defer stream.Close()

	buf := make([]byte, audioChunkSize)
	for {
		n, err := audio.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			event := &types.AudioStreamMemberAudioEvent{
				Value: types.AudioEvent{AudioChunk: chunk},
			}
			if sendErr := stream.Send(ctx, event); sendErr != nil {
				// Stop cancels the context while the killed capture
				// command's pipe can still hold a buffered chunk. A
				// rejected send on that path is a clean stop, not a
				// failure.
				if ctx.Err() == nil {
					s.setErr(sendErr)
				}
				return
			}
		}
		if err != nil {
			// EOF, or the capture command was killed by Stop
			return
		}
	}
}

// collect reads transcript events until the service closes the stream,
// recording final segments and forwarding everything for display.
func (s *StreamSession) collect(ctx context.Context, stream *transcribestreaming.StartStreamTranscriptionEventStream) {
	defer close(s.done)
	defer close(s.segments)

	for event := range stream.Events() {
		transcriptEvent, ok := event.(*types.TranscriptResultStreamMemberTranscriptEvent)
		if !ok || transcriptEvent.Value.Transcript == nil {
			continue
		}
		for _, result := range transcriptEvent.Value.Transcript.Results {
			for _, alt := range result.Alternatives {
				text := aws.ToString(alt.Transcript)
				if text == "" {
					continue
				}
				if !result.IsPartial {
					s.mu.Lock()
					s.finals = append(s.finals, text)
					s.mu.Unlock()
				}
				s.segments <- Segment{Text: text, Partial: result.IsPartial}
			}
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		s.setErr(err)
	}
}

func (s *StreamSession) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
