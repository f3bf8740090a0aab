package server

import (
	"encoding/xml"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glorpus-work/pindex/internal/logger"
)

// rpcValue, rpcMember and rpcStruct model the subset of XML-RPC needed to
// answer a pip search: an array of structs with int and string members.
type rpcValue struct {
	Int    *int       `xml:"int,omitempty"`
	String *string    `xml:"string,omitempty"`
	Struct *rpcStruct `xml:"struct,omitempty"`
}

type rpcMember struct {
	Name  string   `xml:"name"`
	Value rpcValue `xml:"value"`
}

type rpcStruct struct {
	Members []rpcMember `xml:"member"`
}

type rpcResponse struct {
	XMLName xml.Name   `xml:"methodResponse"`
	Values  []rpcValue `xml:"params>param>value>array>data>value"`
}

// handleRPC answers pip-style XML-RPC requests on /RPC2. Only the "search"
// method is understood: the first string parameter is matched as a
// substring against every project name, and each hit is returned as a
// name/version/summary struct. There is no stored summary, so the version
// doubles as one.
func (s *Server) handleRPC(c *gin.Context) {
	method, term, err := parseRPCCall(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "cannot parse XML-RPC request: %v", err)
		return
	}
	if method != "search" {
		logger.Warn("ignoring unsupported XML-RPC method", logger.Fields{"method": method})
		c.Status(http.StatusOK)
		return
	}

	resp := rpcResponse{}
	for ordering, pkg := range s.be.GetAllPackages() {
		if !strings.Contains(pkg.Name, term) {
			continue
		}
		ord := ordering
		version := pkg.Version
		name := pkg.Name
		resp.Values = append(resp.Values, rpcValue{Struct: &rpcStruct{Members: []rpcMember{
			{Name: "_pypi_ordering", Value: rpcValue{Int: &ord}},
			{Name: "version", Value: rpcValue{String: &version}},
			{Name: "name", Value: rpcValue{String: &name}},
			{Name: "summary", Value: rpcValue{String: &version}},
		}}})
	}

	out, err := xml.Marshal(resp)
	if err != nil {
		c.String(http.StatusInternalServerError, "cannot encode XML-RPC response: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

// parseRPCCall extracts the method name and the first string parameter
// from an XML-RPC methodCall body. pip nests the search term inside a
// struct of arrays, so the first <string> element anywhere in the call is
// taken.
func parseRPCCall(r io.Reader) (method, term string, err error) {
	dec := xml.NewDecoder(r)
	var inMethodName, inString, seenString bool
	for {
		tok, tokErr := dec.Token()
		if tokErr == io.EOF {
			break
		}
		if tokErr != nil {
			return "", "", tokErr
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "methodName":
				inMethodName = true
			case "string":
				if !seenString {
					inString = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "methodName":
				inMethodName = false
			case "string":
				if inString {
					seenString = true
					inString = false
				}
			}
		case xml.CharData:
			if inMethodName {
				method += string(t)
			}
			if inString {
				term += string(t)
			}
		}
	}
	return strings.TrimSpace(method), strings.TrimSpace(term), nil
}
