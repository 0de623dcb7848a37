// Package schema parses the record description language into an immutable,
// insertion-ordered model of record types.
//
// # Schema Overview
//
//	# comment
//	TSCredentials ::= SEQUENCE {
//	    credType    [0] INTEGER,
//	    credentials [1] OCTET STRING
//	}
//
//	TSRemoteGuardCreds ::= SEQUENCE {
//	    logonCred         [0] TSRemoteGuardPackageCred,
//	    supplementalCreds [1] SEQUENCE OF TSRemoteGuardPackageCred OPTIONAL
//	}
//
//	%options {
//	    prefix nla_
//	    fieldOption TSCspDataDetail.cardName charInMemorySerializeToUnicode
//	    octetStringLen unicode _wcslen(item->{fieldName}) * 2
//	}
//
// # Parser states
//
// The parser is a line-driven state machine:
//   - ROOT: expects a record header ("<Name> ::= SEQUENCE {") or "%options {"
//   - IN_RECORD: accumulates field lines until "}"
//   - IN_OPTIONS: accumulates option commands until "}"
//
// Only flat records are supported. Record references are kept as plain
// names; they are resolved by package resolve once the whole schema is
// known, so forward references are legal. Field options are different:
// their "Record.field" target is checked immediately, which means an
// options block must follow the records it annotates.
//
// Options can also be supplied as a YAML file (see OptionsFile) and merged
// with Schema.WithOptions.
package schema
