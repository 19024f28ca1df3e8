package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe   = "\uf0ac" // browser/web
	IconPin     = "\uf08d" // thumb-tack
	IconMute    = "\uf6a9" // volume-mute
	IconWindow  = "\uf2d2" // window
	IconWarning = "\uf071" // warning
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconClock   = "\uf017" // clock
	IconCursor  = "\uf054" // chevron-right
	IconExpand  = "\uf065" // expand
)
