package vgacat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/retrobus/vgacat/anim"
	"github.com/retrobus/vgacat/index"
)

// Bundles bigger than this cannot possibly be valid, so they are not worth
// reading into memory.
const maxBundleSize = 1 << 20

func (l *Library) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (l *Library) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			idx := index.New()
			if err := filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
				if info.Name()[0] == '.' {
					if info.Mode().IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				// Ignore anything that isn't a normal file
				if !info.Mode().IsRegular() {
					return nil
				}

				if filepath.Ext(file) != ".anm" {
					return nil
				}

				// Check files are in the "top" directory; subdirectories get indexes of their own
				if filepath.Dir(file) != dir {
					return nil
				}

				if info.Size() > maxBundleSize {
					l.logger.Printf("Skipping \"%s\", too big for a bundle\n", file)
					return nil
				}

				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}

				a := new(anim.Animation)
				if err := a.UnmarshalBinary(b); err != nil {
					l.logger.Printf("Skipping \"%s\", %v\n", file, err)
					return nil
				}

				crc := PayloadCRC(a)

				preview, err := l.db.FindPreviewByCRC(crc)
				if err != nil {
					return err
				}
				if preview == nil {
					// Not in the library, decode the first frame directly
					frames, _ := a.DecodeFrames()
					preview = frames[0].Pack()
					l.logger.Printf("No library entry for \"%s\", with CRC \"%s\"\n", file, crc)
				}

				return idx.Set(index.CRCFilename(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))), preview)
			}); err != nil {
				errc <- err
				return
			}

			if idx.Length() > 0 {
				b, err := idx.MarshalBinary()
				if err != nil {
					errc <- err
					return
				}

				if err := os.WriteFile(filepath.Join(dir, index.Filename), b, 0666); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the filesystem under path and writes a preview index to every
// directory that contains animation bundles, so player firmware can browse
// them without decoding anything.
func (l *Library) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := l.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := l.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
