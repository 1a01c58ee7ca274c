// Package config loads the generator configuration.
//
// The configuration names the marker group of the skip marker, the
// collaborator types and functions generated code refers to, and the
// output location. Sources, lowest priority first: defaults, the
// .field-updater.yaml file, .env files and FIELD_UPDATER_* environment
// variables, command line flags.
//
// # Schema
//
//	marker:
//	  group: struct_field
//	collaborators:
//	  column_type: Column
//	  column_variant: "Column{{.Field}}"
//	  expr_type: SimpleExpr
//	  expr_func: Value
//	  active_model_type: ActiveModel
//	  active_model_ctor: NewActiveModel
//	  set_func: Set
//	  imports: []
//	output:
//	  dir: ""
//	  suffix: _fieldupdater.go
//
// Collaborator values are text/template strings. They may use .Type (the
// record name) and .TypeArgs (e.g. "[K, V]"); column_variant may also use
// .Field, the upper camel form of the field name. Several records sharing
// one package can therefore use "{{.Type}}Column" and friends.
package config
