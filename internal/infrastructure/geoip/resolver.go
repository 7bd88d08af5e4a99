// Package geoip 根据客户端IP解析国家代码(MaxMind mmdb)
package geoip

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// Locator IP → 国家代码
type Locator interface {
	CountryCode(ip net.IP) (string, error)
}

// Reader 基于GeoLite2/GeoIP2 Country库的Locator
type Reader struct {
	db *geoip2.Reader
}

// Open 打开mmdb文件
func Open(path string) (*Reader, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开GeoIP库失败: %w", err)
	}
	return &Reader{db: db}, nil
}

// CountryCode 查询国家代码(小写)，库中没有记录时返回空字符串
func (r *Reader) CountryCode(ip net.IP) (string, error) {
	record, err := r.db.Country(ip)
	if err != nil {
		return "", err
	}
	return strings.ToLower(record.Country.IsoCode), nil
}

// Close 关闭mmdb
func (r *Reader) Close() error {
	return r.db.Close()
}

// IsPublic 是否为可定位的公网地址
// 私有、回环、链路本地、组播、未指定地址都不查询
func IsPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsValid() {
		return false
	}
	return !(addr.IsPrivate() ||
		addr.IsLoopback() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() ||
		addr.IsMulticast() ||
		addr.IsUnspecified())
}

// ClientIP 取X-Forwarded-For的第一跳，没有则使用remoteAddr(可带端口)
func ClientIP(forwardedFor, remoteAddr string) (netip.Addr, bool) {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr, true
		}
	}

	host := strings.TrimSpace(remoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

// Resolver 国家代码解析
type Resolver struct {
	locator        Locator
	defaultCountry string
}

// NewResolver 创建解析器，locator为nil时只使用默认国家
func NewResolver(locator Locator, defaultCountry string) *Resolver {
	return &Resolver{locator: locator, defaultCountry: strings.ToLower(strings.TrimSpace(defaultCountry))}
}

// Lookup 解析公网地址的国家代码，无法定位时返回默认国家
func (r *Resolver) Lookup(addr netip.Addr) string {
	if r.locator == nil || !IsPublic(addr) {
		return r.defaultCountry
	}
	code, err := r.locator.CountryCode(net.IP(addr.Unmap().AsSlice()))
	if err != nil || len(code) != 2 {
		return r.defaultCountry
	}
	return code
}

// Default 默认国家代码
func (r *Resolver) Default() string {
	return r.defaultCountry
}
