// Package wallconfig provides the live-reloadable, per-output configuration
// store for a multi-display wallpaper daemon.
//
// The configuration file is a set of top-level sections, one per named
// output (monitor). A reserved section called "default" supplies fallback
// settings for outputs that are not listed explicitly:
//
//	[default]
//	path = "/usr/share/backgrounds/default.png"
//
//	[HDMI-1]
//	path = "/home/me/wallpapers"
//	duration = "5m"
//	mode = "fill"
//
// Each section recognizes `path` (image file, or directory of images when
// `duration` is set) and `duration` (rotation interval, either a duration
// string like "30s" or a number of seconds). Any other keys are preserved
// untouched for the rendering layer. TOML is the primary format; YAML and
// JSON files are detected by extension or content.
//
// Quick start:
//
//	store, err := wallconfig.New("/etc/wallpaperd/config.toml", logger)
//	if err != nil {
//	    log.Fatal(err) // the daemon must not start on invalid configuration
//	}
//	if err := store.ListenChanges(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    select {
//	    case <-store.Changes():
//	        store.TryUpdate()
//	    case <-ctx.Done():
//	        return
//	    }
//	}
//
// Thread safety: the snapshot held by the store is immutable and swapped
// atomically. Any number of goroutines may call Resolve concurrently;
// TryUpdate must be driven from a single consumer loop. The file watcher
// runs on its own goroutine and only ever sets the pending flag and sends
// wake tokens, so a broken or slow consumer can never stall it. A reload
// that fails to parse or validate is logged and the last-known-good
// snapshot stays in place.
package wallconfig
