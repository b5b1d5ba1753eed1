package env

// Prefix is the environment variable prefix for command flags
const Prefix = "RATESCOPE"
