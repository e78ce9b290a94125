package models

// Config holds the complete dbmask configuration: one target database plus
// separate passthrough options for the dump and command clients.
type Config struct {
	Engine   Engine
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	DumpOpts string // passthrough flags for mysqldump / pg_dump
	CmdOpts  string // passthrough flags for mysql / psql
}

// DumpSpec returns the connection spec for the dump client.
func (c Config) DumpSpec() ConnectionSpec {
	return ConnectionSpec{
		Host:           c.Host,
		Port:           c.Port,
		User:           c.User,
		Password:       c.Password,
		Name:           c.Name,
		AdditionalOpts: c.DumpOpts,
	}
}

// CmdSpec returns the connection spec for the command client.
func (c Config) CmdSpec() ConnectionSpec {
	return ConnectionSpec{
		Host:           c.Host,
		Port:           c.Port,
		User:           c.User,
		Password:       c.Password,
		Name:           c.Name,
		AdditionalOpts: c.CmdOpts,
	}
}
