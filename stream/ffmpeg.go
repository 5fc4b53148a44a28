package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
)

var commandContext = exec.CommandContext

// transcodeArgs builds the fixed ffmpeg invocation: loop the artwork as a
// still video track, read the audio URL in real time with an enlarged input
// queue, encode cheap low-bitrate video and CBR AAC audio, stop with the
// audio, and emit Matroska, which streams over a pipe without needing a
// trailing index.
func transcodeArgs(imagePath, audioURL string) []string {
	return []string{
		"-hide_banner", "-nostdin",
		"-loop", "1",
		"-i", imagePath,
		"-re",
		"-thread_queue_size", "4096",
		"-i", audioURL,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-r", "1",
		"-b:v", "120k",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		"-f", "matroska",
		"pipe:1",
	}
}

// streamTranscoded runs the transcoder and copies its stdout into w until
// either side closes. Errors before the process starts are returned so the
// caller can still answer with a status code; after that point the stream
// has begun and failures only get logged. Cancelling ctx kills the process,
// a disconnecting client must never leak an encoder.
func streamTranscoded(ctx context.Context, binary, imagePath, audioURL string, w io.Writer) error {
	cmd := commandContext(ctx, binary, transcodeArgs(imagePath, audioURL)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", binary, err)
	}

	// Drain stderr continuously, a full pipe buffer would stall the encoder.
	go func() {
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)
		for scanner.Scan() {
			log.Printf("stream: ffmpeg: %s", scanner.Text())
		}
	}()

	if _, err := io.Copy(w, stdout); err != nil {
		log.Printf("stream: copy ended: %v", err)
	}
	if err := cmd.Wait(); err != nil && ctx.Err() == nil {
		log.Printf("stream: ffmpeg exited: %v", err)
	}
	return nil
}
