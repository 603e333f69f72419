package place

import (
	"io"
	"os"
	"time"
)

// copyFile copies src to dst, preserving the source modification time.
// dst is created exclusively, never overwriting an existing file. On any
// write failure the partial dst is removed so the destination tree holds no
// truncated files.
func copyFile(src, dst string) *Error {
	in, err := os.Open(src)
	if err != nil {
		return &Error{Kind: ErrRead, Path: src, Err: err}
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return &Error{Kind: ErrRead, Path: src, Err: err}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &Error{Kind: ErrWrite, Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return &Error{Kind: ErrWrite, Path: dst, Err: err}
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return &Error{Kind: ErrWrite, Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return &Error{Kind: ErrWrite, Path: dst, Err: err}
	}

	// Keep the source mtime so later date resolution still works; failure
	// here is harmless.
	_ = os.Chtimes(dst, time.Now(), fi.ModTime())
	return nil
}

// moveFile moves src to dst. A same-device rename is used when possible;
// otherwise the file is copied and the source removed only after the copy
// is confirmed complete. If the write fails, the source is left untouched.
func moveFile(src, dst string) *Error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if perr := copyFile(src, dst); perr != nil {
		return perr
	}
	if err := os.Remove(src); err != nil {
		return &Error{Kind: ErrWrite, Path: src, Err: err}
	}
	return nil
}
