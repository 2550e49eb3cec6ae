// Copyright (c) 2021 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

// Code identifies the purpose of a protocol line: a textual command such as
// PRIVMSG, or a three-digit numeric reply such as 001. The underlying value
// is always the raw wire token, so string(code) reproduces what the server
// sent exactly, whether or not the code is recognized.
type Code string

// Textual commands, RFC 2812 section 3.
const (
	CodePass     Code = "PASS"
	CodeNick     Code = "NICK"
	CodeUser     Code = "USER"
	CodeOper     Code = "OPER"
	CodeMode     Code = "MODE"
	CodeService  Code = "SERVICE"
	CodeQuit     Code = "QUIT"
	CodeSquit    Code = "SQUIT"
	CodeJoin     Code = "JOIN"
	CodePart     Code = "PART"
	CodeTopic    Code = "TOPIC"
	CodeNames    Code = "NAMES"
	CodeList     Code = "LIST"
	CodeInvite   Code = "INVITE"
	CodeKick     Code = "KICK"
	CodePrivmsg  Code = "PRIVMSG"
	CodeNotice   Code = "NOTICE"
	CodeMotd     Code = "MOTD"
	CodeLusers   Code = "LUSERS"
	CodeVersion  Code = "VERSION"
	CodeStats    Code = "STATS"
	CodeLinks    Code = "LINKS"
	CodeTime     Code = "TIME"
	CodeConnect  Code = "CONNECT"
	CodeTrace    Code = "TRACE"
	CodeAdmin    Code = "ADMIN"
	CodeInfo     Code = "INFO"
	CodeServlist Code = "SERVLIST"
	CodeSquery   Code = "SQUERY"
	CodeWho      Code = "WHO"
	CodeWhois    Code = "WHOIS"
	CodeWhowas   Code = "WHOWAS"
	CodeKill     Code = "KILL"
	CodePing     Code = "PING"
	CodePong     Code = "PONG"
	CodeError    Code = "ERROR"
	CodeAway     Code = "AWAY"
	CodeRehash   Code = "REHASH"
	CodeDie      Code = "DIE"
	CodeRestart  Code = "RESTART"
	CodeSummon   Code = "SUMMON"
	CodeUsers    Code = "USERS"
	CodeWallops  Code = "WALLOPS"
	CodeUserhost Code = "USERHOST"
	CodeIson     Code = "ISON"
	// IRCv3 extensions used during registration
	CodeCap          Code = "CAP"
	CodeAuthenticate Code = "AUTHENTICATE"
)

// Numeric replies, RFC 2812 section 5.
const (
	RplWelcome         Code = "001"
	RplYourhost        Code = "002"
	RplCreated         Code = "003"
	RplMyinfo          Code = "004"
	RplBounce          Code = "005"
	RplUserhost        Code = "302"
	RplIson            Code = "303"
	RplAway            Code = "301"
	RplUnaway          Code = "305"
	RplNowaway         Code = "306"
	RplWhoisuser       Code = "311"
	RplWhoisserver     Code = "312"
	RplWhoisoperator   Code = "313"
	RplWhoisidle       Code = "317"
	RplEndofwhois      Code = "318"
	RplWhoischannels   Code = "319"
	RplWhowasuser      Code = "314"
	RplEndofwhowas     Code = "369"
	RplListstart       Code = "321"
	RplList            Code = "322"
	RplListend         Code = "323"
	RplUniqopis        Code = "325"
	RplChannelmodeis   Code = "324"
	RplNotopic         Code = "331"
	RplTopic           Code = "332"
	RplInviting        Code = "341"
	RplSummoning       Code = "342"
	RplInvitelist      Code = "346"
	RplEndofinvitelist Code = "347"
	RplExceptlist      Code = "348"
	RplEndofexceptlist Code = "349"
	RplVersion         Code = "351"
	RplWhoreply        Code = "352"
	RplEndofwho        Code = "315"
	RplNamreply        Code = "353"
	RplEndofnames      Code = "366"
	RplLinks           Code = "364"
	RplEndoflinks      Code = "365"
	RplBanlist         Code = "367"
	RplEndofbanlist    Code = "368"
	RplInfo            Code = "371"
	RplEndofinfo       Code = "374"
	RplMotdstart       Code = "375"
	RplMotd            Code = "372"
	RplEndofmotd       Code = "376"
	RplYoureoper       Code = "381"
	RplRehashing       Code = "382"
	RplYoureservice    Code = "383"
	RplTime            Code = "391"
	RplUsersstart      Code = "392"
	RplUsers           Code = "393"
	RplEndofusers      Code = "394"
	RplNousers         Code = "395"
	RplTracelink       Code = "200"
	RplTraceconnecting Code = "201"
	RplTracehandshake  Code = "202"
	RplTraceunknown    Code = "203"
	RplTraceoperator   Code = "204"
	RplTraceuser       Code = "205"
	RplTraceserver     Code = "206"
	RplTraceservice    Code = "207"
	RplTracenewtype    Code = "208"
	RplTraceclass      Code = "209"
	RplTracelog        Code = "261"
	RplTraceend        Code = "262"
	RplStatslinkinfo   Code = "211"
	RplStatscommands   Code = "212"
	RplEndofstats      Code = "219"
	RplStatsuptime     Code = "242"
	RplStatsoline      Code = "243"
	RplUmodeis         Code = "221"
	RplServlist        Code = "234"
	RplServlistend     Code = "235"
	RplLuserclient     Code = "251"
	RplLuserop         Code = "252"
	RplLuserunknown    Code = "253"
	RplLuserchannels   Code = "254"
	RplLuserme         Code = "255"
	RplAdminme         Code = "256"
	RplAdminloc1       Code = "257"
	RplAdminloc2       Code = "258"
	RplAdminemail      Code = "259"
	RplTryagain        Code = "263"

	ErrNosuchnick        Code = "401"
	ErrNosuchserver      Code = "402"
	ErrNosuchchannel     Code = "403"
	ErrCannotsendtochan  Code = "404"
	ErrToomanychannels   Code = "405"
	ErrWasnosuchnick     Code = "406"
	ErrToomanytargets    Code = "407"
	ErrNosuchservice     Code = "408"
	ErrNoorigin          Code = "409"
	ErrNorecipient       Code = "411"
	ErrNotexttosend      Code = "412"
	ErrNotoplevel        Code = "413"
	ErrWildtoplevel      Code = "414"
	ErrBadmask           Code = "415"
	ErrUnknowncommand    Code = "421"
	ErrNomotd            Code = "422"
	ErrNoadmininfo       Code = "423"
	ErrFileerror         Code = "424"
	ErrNonicknamegiven   Code = "431"
	ErrErroneusnickname  Code = "432"
	ErrNicknameinuse     Code = "433"
	ErrNickcollision     Code = "436"
	ErrUnavailresource   Code = "437"
	ErrUsernotinchannel  Code = "441"
	ErrNotonchannel      Code = "442"
	ErrUseronchannel     Code = "443"
	ErrNologin           Code = "444"
	ErrSummondisabled    Code = "445"
	ErrUsersdisabled     Code = "446"
	ErrNotregistered     Code = "451"
	ErrNeedmoreparams    Code = "461"
	ErrAlreadyregistred  Code = "462"
	ErrNopermforhost     Code = "463"
	ErrPasswdmismatch    Code = "464"
	ErrYourebannedcreep  Code = "465"
	ErrYouwillbebanned   Code = "466"
	ErrKeyset            Code = "467"
	ErrChannelisfull     Code = "471"
	ErrUnknownmode       Code = "472"
	ErrInviteonlychan    Code = "473"
	ErrBannedfromchan    Code = "474"
	ErrBadchannelkey     Code = "475"
	ErrBadchanmask       Code = "476"
	ErrNochanmodes       Code = "477"
	ErrBanlistfull       Code = "478"
	ErrNoprivileges      Code = "481"
	ErrChanoprivsneeded  Code = "482"
	ErrCantkillserver    Code = "483"
	ErrRestricted        Code = "484"
	ErrUniqopprivsneeded Code = "485"
	ErrNooperhost        Code = "491"
	ErrUmodeunknownflag  Code = "501"
	ErrUsersdontmatch    Code = "502"

	// IRCv3 SASL numerics
	RplLoggedin    Code = "900"
	RplLoggedout   Code = "901"
	ErrNicklocked  Code = "902"
	RplSaslsuccess Code = "903"
	ErrSaslfail    Code = "904"
	ErrSasltoolong Code = "905"
	ErrSaslaborted Code = "906"
	ErrSaslalready Code = "907"
	RplSaslmechs   Code = "908"
)

var commandCodes = []Code{
	CodePass, CodeNick, CodeUser, CodeOper, CodeMode, CodeService,
	CodeQuit, CodeSquit, CodeJoin, CodePart, CodeTopic, CodeNames,
	CodeList, CodeInvite, CodeKick, CodePrivmsg, CodeNotice, CodeMotd,
	CodeLusers, CodeVersion, CodeStats, CodeLinks, CodeTime, CodeConnect,
	CodeTrace, CodeAdmin, CodeInfo, CodeServlist, CodeSquery, CodeWho,
	CodeWhois, CodeWhowas, CodeKill, CodePing, CodePong, CodeError,
	CodeAway, CodeRehash, CodeDie, CodeRestart, CodeSummon, CodeUsers,
	CodeWallops, CodeUserhost, CodeIson, CodeCap, CodeAuthenticate,
}

// canonical display names for numeric replies
var replyNames = map[Code]string{
	RplWelcome: "RPL_WELCOME", RplYourhost: "RPL_YOURHOST",
	RplCreated: "RPL_CREATED", RplMyinfo: "RPL_MYINFO",
	RplBounce: "RPL_BOUNCE", RplUserhost: "RPL_USERHOST",
	RplIson: "RPL_ISON", RplAway: "RPL_AWAY",
	RplUnaway: "RPL_UNAWAY", RplNowaway: "RPL_NOWAWAY",
	RplWhoisuser: "RPL_WHOISUSER", RplWhoisserver: "RPL_WHOISSERVER",
	RplWhoisoperator: "RPL_WHOISOPERATOR", RplWhoisidle: "RPL_WHOISIDLE",
	RplEndofwhois: "RPL_ENDOFWHOIS", RplWhoischannels: "RPL_WHOISCHANNELS",
	RplWhowasuser: "RPL_WHOWASUSER", RplEndofwhowas: "RPL_ENDOFWHOWAS",
	RplListstart: "RPL_LISTSTART", RplList: "RPL_LIST",
	RplListend: "RPL_LISTEND", RplUniqopis: "RPL_UNIQOPIS",
	RplChannelmodeis: "RPL_CHANNELMODEIS", RplNotopic: "RPL_NOTOPIC",
	RplTopic: "RPL_TOPIC", RplInviting: "RPL_INVITING",
	RplSummoning: "RPL_SUMMONING", RplInvitelist: "RPL_INVITELIST",
	RplEndofinvitelist: "RPL_ENDOFINVITELIST", RplExceptlist: "RPL_EXCEPTLIST",
	RplEndofexceptlist: "RPL_ENDOFEXCEPTLIST", RplVersion: "RPL_VERSION",
	RplWhoreply: "RPL_WHOREPLY", RplEndofwho: "RPL_ENDOFWHO",
	RplNamreply: "RPL_NAMREPLY", RplEndofnames: "RPL_ENDOFNAMES",
	RplLinks: "RPL_LINKS", RplEndoflinks: "RPL_ENDOFLINKS",
	RplBanlist: "RPL_BANLIST", RplEndofbanlist: "RPL_ENDOFBANLIST",
	RplInfo: "RPL_INFO", RplEndofinfo: "RPL_ENDOFINFO",
	RplMotdstart: "RPL_MOTDSTART", RplMotd: "RPL_MOTD",
	RplEndofmotd: "RPL_ENDOFMOTD", RplYoureoper: "RPL_YOUREOPER",
	RplRehashing: "RPL_REHASHING", RplYoureservice: "RPL_YOURESERVICE",
	RplTime: "RPL_TIME", RplUsersstart: "RPL_USERSSTART",
	RplUsers: "RPL_USERS", RplEndofusers: "RPL_ENDOFUSERS",
	RplNousers: "RPL_NOUSERS", RplTracelink: "RPL_TRACELINK",
	RplTraceconnecting: "RPL_TRACECONNECTING", RplTracehandshake: "RPL_TRACEHANDSHAKE",
	RplTraceunknown: "RPL_TRACEUNKNOWN", RplTraceoperator: "RPL_TRACEOPERATOR",
	RplTraceuser: "RPL_TRACEUSER", RplTraceserver: "RPL_TRACESERVER",
	RplTraceservice: "RPL_TRACESERVICE", RplTracenewtype: "RPL_TRACENEWTYPE",
	RplTraceclass: "RPL_TRACECLASS", RplTracelog: "RPL_TRACELOG",
	RplTraceend: "RPL_TRACEEND", RplStatslinkinfo: "RPL_STATSLINKINFO",
	RplStatscommands: "RPL_STATSCOMMANDS", RplEndofstats: "RPL_ENDOFSTATS",
	RplStatsuptime: "RPL_STATSUPTIME", RplStatsoline: "RPL_STATSOLINE",
	RplUmodeis: "RPL_UMODEIS", RplServlist: "RPL_SERVLIST",
	RplServlistend: "RPL_SERVLISTEND", RplLuserclient: "RPL_LUSERCLIENT",
	RplLuserop: "RPL_LUSEROP", RplLuserunknown: "RPL_LUSERUNKNOWN",
	RplLuserchannels: "RPL_LUSERCHANNELS", RplLuserme: "RPL_LUSERME",
	RplAdminme: "RPL_ADMINME", RplAdminloc1: "RPL_ADMINLOC1",
	RplAdminloc2: "RPL_ADMINLOC2", RplAdminemail: "RPL_ADMINEMAIL",
	RplTryagain: "RPL_TRYAGAIN",

	ErrNosuchnick: "ERR_NOSUCHNICK", ErrNosuchserver: "ERR_NOSUCHSERVER",
	ErrNosuchchannel: "ERR_NOSUCHCHANNEL", ErrCannotsendtochan: "ERR_CANNOTSENDTOCHAN",
	ErrToomanychannels: "ERR_TOOMANYCHANNELS", ErrWasnosuchnick: "ERR_WASNOSUCHNICK",
	ErrToomanytargets: "ERR_TOOMANYTARGETS", ErrNosuchservice: "ERR_NOSUCHSERVICE",
	ErrNoorigin: "ERR_NOORIGIN", ErrNorecipient: "ERR_NORECIPIENT",
	ErrNotexttosend: "ERR_NOTEXTTOSEND", ErrNotoplevel: "ERR_NOTOPLEVEL",
	ErrWildtoplevel: "ERR_WILDTOPLEVEL", ErrBadmask: "ERR_BADMASK",
	ErrUnknowncommand: "ERR_UNKNOWNCOMMAND", ErrNomotd: "ERR_NOMOTD",
	ErrNoadmininfo: "ERR_NOADMININFO", ErrFileerror: "ERR_FILEERROR",
	ErrNonicknamegiven: "ERR_NONICKNAMEGIVEN", ErrErroneusnickname: "ERR_ERRONEUSNICKNAME",
	ErrNicknameinuse: "ERR_NICKNAMEINUSE", ErrNickcollision: "ERR_NICKCOLLISION",
	ErrUnavailresource: "ERR_UNAVAILRESOURCE", ErrUsernotinchannel: "ERR_USERNOTINCHANNEL",
	ErrNotonchannel: "ERR_NOTONCHANNEL", ErrUseronchannel: "ERR_USERONCHANNEL",
	ErrNologin: "ERR_NOLOGIN", ErrSummondisabled: "ERR_SUMMONDISABLED",
	ErrUsersdisabled: "ERR_USERSDISABLED", ErrNotregistered: "ERR_NOTREGISTERED",
	ErrNeedmoreparams: "ERR_NEEDMOREPARAMS", ErrAlreadyregistred: "ERR_ALREADYREGISTRED",
	ErrNopermforhost: "ERR_NOPERMFORHOST", ErrPasswdmismatch: "ERR_PASSWDMISMATCH",
	ErrYourebannedcreep: "ERR_YOUREBANNEDCREEP", ErrYouwillbebanned: "ERR_YOUWILLBEBANNED",
	ErrKeyset: "ERR_KEYSET", ErrChannelisfull: "ERR_CHANNELISFULL",
	ErrUnknownmode: "ERR_UNKNOWNMODE", ErrInviteonlychan: "ERR_INVITEONLYCHAN",
	ErrBannedfromchan: "ERR_BANNEDFROMCHAN", ErrBadchannelkey: "ERR_BADCHANNELKEY",
	ErrBadchanmask: "ERR_BADCHANMASK", ErrNochanmodes: "ERR_NOCHANMODES",
	ErrBanlistfull: "ERR_BANLISTFULL", ErrNoprivileges: "ERR_NOPRIVILEGES",
	ErrChanoprivsneeded: "ERR_CHANOPRIVSNEEDED", ErrCantkillserver: "ERR_CANTKILLSERVER",
	ErrRestricted: "ERR_RESTRICTED", ErrUniqopprivsneeded: "ERR_UNIQOPPRIVSNEEDED",
	ErrNooperhost: "ERR_NOOPERHOST", ErrUmodeunknownflag: "ERR_UMODEUNKNOWNFLAG",
	ErrUsersdontmatch: "ERR_USERSDONTMATCH",

	RplLoggedin: "RPL_LOGGEDIN", RplLoggedout: "RPL_LOGGEDOUT",
	ErrNicklocked: "ERR_NICKLOCKED", RplSaslsuccess: "RPL_SASLSUCCESS",
	ErrSaslfail: "ERR_SASLFAIL", ErrSasltoolong: "ERR_SASLTOOLONG",
	ErrSaslaborted: "ERR_SASLABORTED", ErrSaslalready: "ERR_SASLALREADY",
	RplSaslmechs: "RPL_SASLMECHS",
}

// knownCodes is the closed set of recognized commands and replies; it is
// populated once at startup and read-only thereafter.
var knownCodes map[Code]string

func init() {
	knownCodes = make(map[Code]string, len(commandCodes)+len(replyNames))
	for _, code := range commandCodes {
		knownCodes[code] = string(code)
	}
	for code, name := range replyNames {
		knownCodes[code] = name
	}
}

// LookupCode resolves a raw command token from the wire into a Code.
// Matching against the known set is exact and case-sensitive; tokens outside
// it pass through verbatim, so no text is ever lost or normalized. Use Known
// to distinguish the two cases.
func LookupCode(token string) Code {
	return Code(token)
}

// Known reports whether the code is in the table of recognized commands and
// numeric replies.
func (code Code) Known() bool {
	_, ok := knownCodes[code]
	return ok
}

// Name returns a human-readable name for the code: the canonical reply name
// for known numerics ("RPL_WELCOME" for "001"), the raw token otherwise.
func (code Code) Name() string {
	if name, ok := knownCodes[code]; ok {
		return name
	}
	return string(code)
}
