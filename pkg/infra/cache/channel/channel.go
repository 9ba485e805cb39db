package channel

// Channel is a Redis pub/sub channel name.
type Channel string

const RelayChannel Channel = "teachme:relay"
