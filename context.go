package checkdenormal

// Context holds the flush-to-zero policy read by every dispatch entry.
// It is owned by the host; the backend only receives it by pointer.
type Context struct {
	FlushToZero bool
}

// Config is the structured configuration value applied to a Context.
// Applying it overwrites the context; there is no merge.
type Config struct {
	FlushToZero bool `toml:"flush_to_zero" yaml:"flush_to_zero"`
}

// Apply overwrites c with conf.
func (c *Context) Apply(conf Config) {
	c.FlushToZero = conf.FlushToZero
}
