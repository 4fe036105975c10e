// Package volume discovers removable storage volumes and reports when they change.
//
// # Scanner
//
// SystemScanner lists mounted partitions through gopsutil and keeps those that
// look external: mounted under a configured prefix (/run/media, /media, /mnt,
// /Volumes), flagged removable by the OS, or any non-system drive letter on
// Windows. Configured Roots are always included. StaticScanner serves a fixed list.
//
// # Watcher
//
// Watcher uses fsnotify on the mount prefix directories and invokes a callback,
// debounced, whenever a mount point appears or disappears.
package volume
